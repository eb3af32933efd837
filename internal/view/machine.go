package view

import (
	"errors"
	"fmt"

	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrInvalidTransition is returned for events the current state does not accept.
var ErrInvalidTransition = errors.New("invalid view transition")

// Machine drives State through its transitions:
//
//	Form --submit--> [pending] --daily ok--> Summary --select i--> Detail
//	[pending] / Detail --failure--> Error
//	any --clear--> Form
//
// Submit, SelectDay and Clear each start a new generation; completions from an
// earlier generation are dropped. Machine is not safe for concurrent use.
type Machine struct {
	state State
	gen   Ticket
}

// NewMachine returns a machine in the initial Form state.
func NewMachine() *Machine {
	return &Machine{state: State{Kind: Form}}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

func (m *Machine) next() Ticket {
	m.gen++
	return m.gen
}

// Submit starts a resolution attempt for in. Prior forecast data is discarded.
func (m *Machine) Submit(in location.Input) Ticket {
	t := m.next()
	m.state = State{Kind: Form, Input: in, Pending: true, Folded: m.state.Folded}
	return t
}

// Reject ends the attempt t with an inline validation error.
func (m *Machine) Reject(t Ticket, verr *location.ValidationError) bool {
	if t != m.gen || m.state.Kind != Form || !m.state.Pending {
		return false
	}
	m.state.Pending = false
	m.state.Invalid = verr
	return true
}

// DailyLoaded completes attempt t with the daily forecast for coord.
func (m *Machine) DailyLoaded(t Ticket, coord weather.Coordinate, forecast weather.DailyForecast) bool {
	if t != m.gen || m.state.Kind != Form || !m.state.Pending {
		return false
	}
	m.state = State{
		Kind:     Summary,
		Input:    m.state.Input,
		Coord:    coord,
		Forecast: forecast,
		Folded:   m.state.Folded,
	}
	return true
}

// SelectDay moves Summary to Detail for day i and returns the ticket the
// hourly fetch must complete with.
func (m *Machine) SelectDay(i int) (Ticket, error) {
	if m.state.Kind != Summary {
		return 0, fmt.Errorf("%w: select day in %s", ErrInvalidTransition, m.state.Kind)
	}
	if i < 0 || i >= len(m.state.Forecast) {
		return 0, fmt.Errorf("%w: day %d out of range 0..%d", ErrInvalidTransition, i, len(m.state.Forecast)-1)
	}
	t := m.next()
	m.state = State{
		Kind:     Detail,
		Input:    m.state.Input,
		Pending:  true,
		Coord:    m.state.Coord,
		Forecast: m.state.Forecast,
		Selected: i,
		Folded:   m.state.Folded,
	}
	return t, nil
}

// HourlyLoaded completes the hourly fetch started by SelectDay.
func (m *Machine) HourlyLoaded(t Ticket, hourly weather.HourlyForecast) bool {
	if t != m.gen || m.state.Kind != Detail || !m.state.Pending {
		return false
	}
	m.state.Pending = false
	m.state.Hourly = hourly
	return true
}

// Fail ends the pending fetch of attempt t in the Error state.
func (m *Machine) Fail(t Ticket, cause error) bool {
	if t != m.gen || !m.state.Pending {
		return false
	}
	m.state = State{Kind: Error, Input: m.state.Input, Cause: cause, Folded: m.state.Folded}
	return true
}

// Clear hides the weather panels and shows the form again. The form keeps its
// values. Fetches still in flight are orphaned.
func (m *Machine) Clear() {
	m.next()
	m.state = State{Kind: Form, Input: m.state.Input, Folded: m.state.Folded}
}

// ToggleFold flips the temperature-range chart between folded and unfolded.
func (m *Machine) ToggleFold() {
	m.state.Folded = !m.state.Folded
}
