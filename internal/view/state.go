// Package view holds the dashboard's view state machine. It is pure: no I/O,
// no clocks, and visibility is derived from the state alone.
package view

import (
	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Kind is the visible mode of the dashboard. Exactly one is active.
type Kind int

const (
	Form Kind = iota
	Summary
	Detail
	Error
)

func (k Kind) String() string {
	switch k {
	case Form:
		return "form"
	case Summary:
		return "summary"
	case Detail:
		return "detail"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Ticket identifies the attempt that started an asynchronous step. Completions
// carrying a ticket other than the machine's current one are stale.
type Ticket uint64

// State is one immutable snapshot of the dashboard.
type State struct {
	Kind Kind

	// Form: the values last entered and the first missing field, if any.
	Input   location.Input
	Invalid *location.ValidationError

	// Pending is set while the fetch that completes this state is in flight:
	// the daily fetch in Form, the hourly fetch in Detail.
	Pending bool

	// Summary and Detail.
	Coord    weather.Coordinate
	Forecast weather.DailyForecast

	// Detail.
	Selected int
	Hourly   weather.HourlyForecast

	// Error.
	Cause error

	// Folded hides the temperature-range chart. It is independent of Kind.
	Folded bool
}

// Today returns the record shown on the summary card.
func (s State) Today() (weather.DailyRecord, bool) {
	if len(s.Forecast) == 0 {
		return weather.DailyRecord{}, false
	}
	return s.Forecast[0], true
}

// Day returns the record selected in Detail.
func (s State) Day() (weather.DailyRecord, bool) {
	if s.Kind != Detail || s.Selected < 0 || s.Selected >= len(s.Forecast) {
		return weather.DailyRecord{}, false
	}
	return s.Forecast[s.Selected], true
}

// Panels lists which parts of the page are visible.
type Panels struct {
	Form       bool `json:"form"`
	Card       bool `json:"card"`
	Table      bool `json:"table"`
	Details    bool `json:"details"`
	Charts     bool `json:"charts"`
	RangeChart bool `json:"rangeChart"`
	Meteogram  bool `json:"meteogram"`
	Error      bool `json:"error"`
}

// Visible maps a state to its visible panels.
func Visible(s State) Panels {
	switch s.Kind {
	case Summary:
		return Panels{Card: true, Table: true}
	case Detail:
		return Panels{
			Details:    true,
			Charts:     true,
			RangeChart: !s.Folded,
			Meteogram:  len(s.Hourly) > 0,
		}
	case Error:
		return Panels{Error: true}
	default:
		return Panels{Form: true}
	}
}
