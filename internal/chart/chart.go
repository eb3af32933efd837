// Package chart builds Highcharts option objects from prepared series.
// It shapes nothing: series arrive ready to plot.
package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
)

// Container ids the page reserves for the two charts.
const (
	RangeContainer     = "temp-area-chart"
	MeteogramContainer = "comb-chart"
)

const hourMillis = 3600 * 1000

// Options is a Highcharts configuration object.
type Options struct {
	Chart       ChartConfig    `json:"chart"`
	Title       Text           `json:"title"`
	XAxis       []Axis         `json:"xAxis"`
	YAxis       []Axis         `json:"yAxis"`
	Tooltip     *Tooltip       `json:"tooltip,omitempty"`
	Legend      *Toggle        `json:"legend,omitempty"`
	PlotOptions map[string]any `json:"plotOptions,omitempty"`
	Series      []Series       `json:"series"`
}

type ChartConfig struct {
	Type         string `json:"type"`
	MarginBottom int    `json:"marginBottom,omitempty"`
	Zooming      Zoom   `json:"zooming"`
}

type Zoom struct {
	Type string `json:"type"`
}

type Text struct {
	Text *string `json:"text"`
}

type Style map[string]string

type Labels struct {
	Format string `json:"format,omitempty"`
	Align  string `json:"align,omitempty"`
	Style  Style  `json:"style,omitempty"`
}

type Axis struct {
	Type          string  `json:"type,omitempty"`
	Categories    []int64 `json:"categories,omitempty"`
	TickInterval  int64   `json:"tickInterval,omitempty"`
	LinkedTo      *int    `json:"linkedTo,omitempty"`
	Opposite      bool    `json:"opposite"`
	Labels        *Labels `json:"labels,omitempty"`
	Title         *Text   `json:"title,omitempty"`
	GridLineWidth *int    `json:"gridLineWidth,omitempty"`
	GridLineColor string  `json:"gridLineColor,omitempty"`
	Crosshair     bool    `json:"crosshair"`
	Min           *int    `json:"min,omitempty"`
	Max           *int    `json:"max,omitempty"`
}

type Tooltip struct {
	Shared        bool   `json:"shared,omitempty"`
	ValueSuffix   string `json:"valueSuffix,omitempty"`
	XDateFormat   string `json:"xDateFormat,omitempty"`
	ValueDecimals *int   `json:"valueDecimals,omitempty"`
}

type Toggle struct {
	Enabled bool `json:"enabled"`
}

type Series struct {
	Name         string      `json:"name"`
	Type         string      `json:"type,omitempty"`
	YAxis        *int        `json:"yAxis,omitempty"`
	Data         any         `json:"data"`
	Color        any         `json:"color,omitempty"`
	DashStyle    string      `json:"dashStyle,omitempty"`
	ShowInLegend *bool       `json:"showInLegend,omitempty"`
	DataLabels   *DataLabels `json:"dataLabels,omitempty"`
	Tooltip      *Tooltip    `json:"tooltip,omitempty"`
}

type DataLabels struct {
	Enabled bool   `json:"enabled"`
	Inside  bool   `json:"inside"`
	Format  string `json:"format,omitempty"`
	Style   Style  `json:"style,omitempty"`
}

// JS returns the options as a JavaScript object literal for embedding in a page.
func (o Options) JS() (template.JS, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return "", fmt.Errorf("encode chart options: %w", err)
	}
	return template.JS(b), nil
}

func ptr[T any](v T) *T { return &v }

func str(s string) *string { return &s }
