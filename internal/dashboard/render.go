package dashboard

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"

	"github.com/i474232898/weather-dashboard/internal/backend"
	"github.com/i474232898/weather-dashboard/internal/chart"
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/series"
	"github.com/i474232898/weather-dashboard/internal/view"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

//go:embed templates/index.html
var templateFS embed.FS

const (
	foldIcon   = "/static/Images/point-down-512.png"
	unfoldIcon = "/static/Images/point-up-512.png"
)

// States offered by the state select, postal code and name.
var States = [][2]string{
	{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"}, {"AR", "Arkansas"},
	{"CA", "California"}, {"CO", "Colorado"}, {"CT", "Connecticut"}, {"DE", "Delaware"},
	{"DC", "District Of Columbia"}, {"FL", "Florida"}, {"GA", "Georgia"}, {"HI", "Hawaii"},
	{"ID", "Idaho"}, {"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"},
	{"KS", "Kansas"}, {"KY", "Kentucky"}, {"LA", "Louisiana"}, {"ME", "Maine"},
	{"MD", "Maryland"}, {"MA", "Massachusetts"}, {"MI", "Michigan"}, {"MN", "Minnesota"},
	{"MS", "Mississippi"}, {"MO", "Missouri"}, {"MT", "Montana"}, {"NE", "Nebraska"},
	{"NV", "Nevada"}, {"NH", "New Hampshire"}, {"NJ", "New Jersey"}, {"NM", "New Mexico"},
	{"NY", "New York"}, {"NC", "North Carolina"}, {"ND", "North Dakota"}, {"OH", "Ohio"},
	{"OK", "Oklahoma"}, {"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"},
	{"SC", "South Carolina"}, {"SD", "South Dakota"}, {"TN", "Tennessee"}, {"TX", "Texas"},
	{"UT", "Utah"}, {"VT", "Vermont"}, {"VA", "Virginia"}, {"WA", "Washington"},
	{"WV", "West Virginia"}, {"WI", "Wisconsin"}, {"WY", "Wyoming"},
}

// Page is everything the template needs; it is derived from a state alone.
type Page struct {
	SessionID string
	Kind      string
	Panels    view.Panels
	Input     location.Input
	Auto      bool
	Invalid   *location.ValidationError
	States    [][2]string

	Today    *weather.DailyRecord
	Days     []weather.DailyRecord
	Selected int
	Day      *weather.DailyRecord

	FoldIcon  string
	RangeJS   template.JS
	MeteoJS   template.JS
	RangeID   string
	MeteoID   string
	ErrorText string
}

// Renderer turns view states into HTML.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"num": formatNumber,
	}).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render produces the page for st. Equal states render byte-identical pages.
func (r *Renderer) Render(sessionID string, st view.State) ([]byte, error) {
	page, err := NewPage(sessionID, st)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// NewPage builds the template data for st.
func NewPage(sessionID string, st view.State) (Page, error) {
	p := Page{
		SessionID: sessionID,
		Kind:      st.Kind.String(),
		Panels:    view.Visible(st),
		Input:     st.Input,
		Auto:      st.Input.Kind == location.KindAuto,
		Invalid:   st.Invalid,
		States:    States,
		Selected:  st.Selected,
		FoldIcon:  foldIcon,
		RangeID:   chart.RangeContainer,
		MeteoID:   chart.MeteogramContainer,
	}
	if st.Folded {
		p.FoldIcon = unfoldIcon
	}

	switch st.Kind {
	case view.Summary:
		if today, ok := st.Today(); ok {
			p.Today = &today
		}
		p.Days = st.Forecast
	case view.Detail:
		if day, ok := st.Day(); ok {
			p.Day = &day
		}
		if err := p.drawCharts(st); err != nil {
			return Page{}, err
		}
	case view.Error:
		p.ErrorText = ErrorText(st.Cause)
	}
	return p, nil
}

func (p *Page) drawCharts(st view.State) error {
	rng, err := series.DailyToRange(st.Forecast)
	if err != nil {
		return err
	}
	opts, err := chart.TemperatureRange(rng)
	if err != nil {
		return err
	}
	if p.RangeJS, err = opts.JS(); err != nil {
		return err
	}

	if len(st.Hourly) == 0 {
		return nil
	}
	meteo, err := series.HourlyToMeteogram(st.Hourly)
	if err != nil {
		return err
	}
	opts, err = chart.Meteogram(meteo)
	if err != nil {
		return err
	}
	p.MeteoJS, err = opts.JS()
	return err
}

// ErrorText is the message shown in the error panel for cause.
func ErrorText(cause error) string {
	switch {
	case errors.Is(cause, backend.ErrBackend):
		return "No records have been found."
	case errors.Is(cause, backend.ErrTransport), errors.Is(cause, location.ErrTransport):
		return "The weather service could not be reached. Please try again."
	case errors.Is(cause, location.ErrUnavailable):
		return "Your location could not be determined."
	default:
		return "Something went wrong while loading the weather."
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
