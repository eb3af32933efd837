package weather

import (
	"context"
	"errors"
)

// ErrIncompleteForecast is returned when an upstream answer does not carry enough data.
var ErrIncompleteForecast = errors.New("incomplete forecast")

// Provider abstracts the upstream timeline source (e.g. Tomorrow.io).
type Provider interface {
	Name() string
	Daily(ctx context.Context, coord Coordinate) ([]DailyRecord, error)
	Hourly(ctx context.Context, coord Coordinate) ([]HourlyRecord, error)
}
