package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/location"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultGeocodeURL is the Google Geocoding API endpoint.
const DefaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder implements location.Geocoder for the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewGoogleGeocoder(client *http.Client, baseURL, apiKey string) *GoogleGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodeURL
	}
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newAnswerBreaker("google-geocode"),
	}
}

// Geocode returns the location of the first result for address.
// Any status other than OK, an empty result list or a non-2xx answer is
// location.ErrNoMatch; everything else is location.ErrTransport.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (weather.Coordinate, error) {
	values := url.Values{}
	values.Set("address", address)
	values.Set("key", g.apiKey)
	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}

	if err := getJSON(ctx, g.client, g.circuit, u, &payload); err != nil {
		if isStatusError(err) {
			return weather.Coordinate{}, fmt.Errorf("%w: %v", location.ErrNoMatch, err)
		}
		return weather.Coordinate{}, fmt.Errorf("%w: %v", location.ErrTransport, err)
	}

	if payload.Status != "OK" {
		return weather.Coordinate{}, fmt.Errorf("%w: status %s", location.ErrNoMatch, payload.Status)
	}
	if len(payload.Results) == 0 {
		return weather.Coordinate{}, fmt.Errorf("%w: empty result list", location.ErrNoMatch)
	}

	loc := payload.Results[0].Geometry.Location
	return weather.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
