package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNoMatch means the geocoder answered but had no usable result.
	// The resolver recovers from it by asking the IP locator.
	ErrNoMatch = errors.New("geocoding returned no result")

	// ErrTransport wraps network-level failures of an outbound call.
	ErrTransport = errors.New("location provider unreachable")

	// ErrUnavailable means the IP locator answered without a usable coordinate.
	ErrUnavailable = errors.New("location unavailable")
)

// Geocoder resolves a free-text address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (weather.Coordinate, error)
}

// IPLocator resolves the caller's network origin.
type IPLocator interface {
	Locate(ctx context.Context) (weather.Coordinate, error)
}

// Resolver turns an Input into exactly one Coordinate.
type Resolver struct {
	geocoder Geocoder
	locator  IPLocator
}

// NewResolver creates a new Resolver.
func NewResolver(geocoder Geocoder, locator IPLocator) *Resolver {
	return &Resolver{geocoder: geocoder, locator: locator}
}

// Resolve validates in and resolves it to a coordinate.
//
// Address input makes one geocoding call. When the geocoder has no result the IP
// locator is asked once, silently. A transport failure of the geocoder is returned
// as is; it does not fall back. Auto input only asks the IP locator.
func (r *Resolver) Resolve(ctx context.Context, in Input) (weather.Coordinate, error) {
	if err := in.Validate(); err != nil {
		return weather.Coordinate{}, err
	}

	if in.Kind == KindAuto {
		return r.locate(ctx)
	}

	address := in.Address()
	coord, err := r.geocoder.Geocode(ctx, address)
	switch {
	case err == nil:
		return coord, nil
	case errors.Is(err, ErrNoMatch):
		log.Info().Str("address", address).Err(err).Msg("geocoding found nothing; falling back to ip location")
		return r.locate(ctx)
	default:
		log.Error().Str("address", address).Err(err).Msg("geocoding failed")
		if !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %v", ErrTransport, err)
		}
		return weather.Coordinate{}, err
	}
}

func (r *Resolver) locate(ctx context.Context) (weather.Coordinate, error) {
	coord, err := r.locator.Locate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ip location failed")
		if !errors.Is(err, ErrTransport) && !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return weather.Coordinate{}, err
	}
	return coord, nil
}
