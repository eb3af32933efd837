// Package dashboard orchestrates location resolution, forecast fetching and the
// view state machine for each open page, and renders the page for a state.
package dashboard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/view"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Resolver turns a form input into a coordinate.
type Resolver interface {
	Resolve(ctx context.Context, in location.Input) (weather.Coordinate, error)
}

// Fetcher retrieves forecasts from the weather endpoints.
type Fetcher interface {
	FetchDaily(ctx context.Context, coord weather.Coordinate) (weather.DailyForecast, error)
	FetchHourly(ctx context.Context, coord weather.Coordinate) (weather.HourlyForecast, error)
}

// Store keeps open sessions.
type Store interface {
	Save(s *Session)
	Get(id string) (*Session, error)
}

// Controller handles the user actions of every open page.
type Controller struct {
	store    Store
	resolver Resolver
	fetcher  Fetcher
}

// NewController creates a new Controller.
func NewController(store Store, resolver Resolver, fetcher Fetcher) *Controller {
	return &Controller{store: store, resolver: resolver, fetcher: fetcher}
}

// Open starts a fresh page session in the Form state.
func (c *Controller) Open() *Session {
	s := NewSession(uuid.NewString())
	c.store.Save(s)
	return s
}

// Session looks up an open session.
func (c *Controller) Session(id string) (*Session, error) {
	return c.store.Get(id)
}

// Submit resolves in, fetches the daily forecast and moves the page to Summary,
// back to Form with an inline error, or to Error.
func (c *Controller) Submit(ctx context.Context, id string, in location.Input) (view.State, error) {
	s, err := c.store.Get(id)
	if err != nil {
		return view.State{}, err
	}

	var ticket view.Ticket
	s.with(func(m *view.Machine) { ticket = m.Submit(in) })

	coord, err := c.resolver.Resolve(ctx, in)
	if err != nil {
		var verr *location.ValidationError
		if errors.As(err, &verr) {
			return s.with(func(m *view.Machine) { m.Reject(ticket, verr) }), nil
		}
		log.Error().Err(err).Str("session", id).Msg("get location failed")
		return c.fail(s, ticket, err), nil
	}

	forecast, err := c.fetcher.FetchDaily(ctx, coord)
	if err != nil {
		return c.fail(s, ticket, err), nil
	}

	return s.with(func(m *view.Machine) {
		if !m.DailyLoaded(ticket, coord, forecast) {
			log.Debug().Str("session", id).Uint64("ticket", uint64(ticket)).Msg("dropped stale daily forecast")
		}
	}), nil
}

// SelectDay shows the detail view for day i and then loads the hourly forecast
// for the coordinate the summary was built from.
func (c *Controller) SelectDay(ctx context.Context, id string, i int) (view.State, error) {
	s, err := c.store.Get(id)
	if err != nil {
		return view.State{}, err
	}

	var (
		ticket view.Ticket
		coord  weather.Coordinate
	)
	var selErr error
	s.with(func(m *view.Machine) {
		ticket, selErr = m.SelectDay(i)
		coord = m.State().Coord
	})
	if selErr != nil {
		return view.State{}, selErr
	}

	hourly, err := c.fetcher.FetchHourly(ctx, coord)
	if err != nil {
		return c.fail(s, ticket, err), nil
	}

	return s.with(func(m *view.Machine) {
		if !m.HourlyLoaded(ticket, hourly) {
			log.Debug().Str("session", id).Uint64("ticket", uint64(ticket)).Msg("dropped stale hourly forecast")
		}
	}), nil
}

// Clear hides the weather panels and shows the form.
func (c *Controller) Clear(id string) (view.State, error) {
	s, err := c.store.Get(id)
	if err != nil {
		return view.State{}, err
	}
	return s.with(func(m *view.Machine) { m.Clear() }), nil
}

// ToggleFold folds or unfolds the temperature-range chart.
func (c *Controller) ToggleFold(id string) (view.State, error) {
	s, err := c.store.Get(id)
	if err != nil {
		return view.State{}, err
	}
	return s.with(func(m *view.Machine) { m.ToggleFold() }), nil
}

func (c *Controller) fail(s *Session, ticket view.Ticket, cause error) view.State {
	return s.with(func(m *view.Machine) {
		if !m.Fail(ticket, cause) {
			log.Debug().Str("session", s.ID).Err(cause).Msg("dropped stale failure")
		}
	})
}
