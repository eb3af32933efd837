package weather

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Service serves the backend forecast endpoints from a single upstream provider.
type Service struct {
	provider Provider
}

// NewService creates a new Service.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Daily returns the next DailyDays days for coord, today first.
func (s *Service) Daily(ctx context.Context, coord Coordinate) (DailyForecast, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no weather provider configured")
	}

	records, err := s.provider.Daily(ctx, coord)
	if err != nil {
		log.Error().Err(err).Str("provider", s.provider.Name()).Stringer("coord", coord).Msg("daily forecast failed")
		return nil, err
	}

	// Upstream may include a partial eighth day; consumers index 0..6 only.
	if len(records) > DailyDays {
		records = records[:DailyDays]
	}
	forecast := DailyForecast(records)
	if err := forecast.Validate(); err != nil {
		log.Warn().Err(err).Str("provider", s.provider.Name()).Stringer("coord", coord).Msg("daily forecast too short")
		return nil, err
	}
	return forecast, nil
}

// Hourly returns the hourly forecast for coord in ascending time order.
func (s *Service) Hourly(ctx context.Context, coord Coordinate) (HourlyForecast, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("no weather provider configured")
	}

	records, err := s.provider.Hourly(ctx, coord)
	if err != nil {
		log.Error().Err(err).Str("provider", s.provider.Name()).Stringer("coord", coord).Msg("hourly forecast failed")
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no hourly intervals", ErrIncompleteForecast)
	}
	return HourlyForecast(records), nil
}
