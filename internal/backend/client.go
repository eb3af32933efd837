// Package backend fetches forecasts from the dashboard's own weather endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const (
	dailyPath  = "/weather/daily"
	hourlyPath = "/weather/hourly"
)

var (
	// ErrBackend is an explicit error answer from the weather endpoints.
	ErrBackend = errors.New("weather backend reported an error")

	// ErrTransport is a network-level failure talking to the weather endpoints.
	ErrTransport = errors.New("weather backend unreachable")
)

// Client is the Weather Fetcher. It issues one GET per call and never retries.
type Client struct {
	rest *resty.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(timeout)
	}
}

// NewClient creates a client for the endpoints served at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	rest := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	rest.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		log.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("backend response")
		return nil
	})

	c := &Client{rest: rest}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchDaily returns the 7-day forecast for coord.
func (c *Client) FetchDaily(ctx context.Context, coord weather.Coordinate) (weather.DailyForecast, error) {
	var forecast weather.DailyForecast
	if err := c.get(ctx, dailyPath, coord, &forecast); err != nil {
		return nil, err
	}
	if err := forecast.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return forecast, nil
}

// FetchHourly returns the hourly forecast for coord.
func (c *Client) FetchHourly(ctx context.Context, coord weather.Coordinate) (weather.HourlyForecast, error) {
	var forecast weather.HourlyForecast
	if err := c.get(ctx, hourlyPath, coord, &forecast); err != nil {
		return nil, err
	}
	return forecast, nil
}

func (c *Client) get(ctx context.Context, path string, coord weather.Coordinate, out any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat": strconv.FormatFloat(coord.Lat, 'f', -1, 64),
			"lng": strconv.FormatFloat(coord.Lng, 'f', -1, 64),
		}).
		Get(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Stringer("coord", coord).Msg("get weather data from web server failed")
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) > 0 && body[0] == '{' {
		var signal struct {
			Status  string `json:"status"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body, &signal); err == nil && signal.Status == weather.StatusError {
			return fmt.Errorf("%w: %s %s", ErrBackend, path, signal.Message)
		}
		return fmt.Errorf("%w: %s returned an unexpected object (status %d)", ErrBackend, path, resp.StatusCode())
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %s returned malformed JSON (status %d): %v", ErrBackend, path, resp.StatusCode(), err)
	}
	return nil
}
