package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultTomorrowURL is the Tomorrow.io timelines endpoint.
const DefaultTomorrowURL = "https://api.tomorrow.io/v4/timelines"

var (
	dailyFields = []string{
		"temperature", "temperatureMin", "temperatureMax", "windSpeed", "humidity",
		"pressureSeaLevel", "uvIndex", "weatherCode", "precipitationProbability",
		"precipitationType", "sunriseTime", "sunsetTime", "visibility", "cloudCover",
	}
	hourlyFields = []string{
		"temperature", "windSpeed", "windDirection", "humidity", "pressureSeaLevel",
	}
)

// TomorrowProvider implements the weather.Provider interface for Tomorrow.io.
type TomorrowProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewTomorrowProvider(client *http.Client, baseURL, apiKey string) *TomorrowProvider {
	if baseURL == "" {
		baseURL = DefaultTomorrowURL
	}
	return &TomorrowProvider{
		name:    "tomorrow.io",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("tomorrow"),
	}
}

func (p *TomorrowProvider) Name() string {
	return p.name
}

type timelineValues struct {
	Temperature              float64 `json:"temperature"`
	TemperatureMin           float64 `json:"temperatureMin"`
	TemperatureMax           float64 `json:"temperatureMax"`
	WindSpeed                float64 `json:"windSpeed"`
	WindDirection            float64 `json:"windDirection"`
	Humidity                 float64 `json:"humidity"`
	PressureSeaLevel         float64 `json:"pressureSeaLevel"`
	UVIndex                  float64 `json:"uvIndex"`
	WeatherCode              int     `json:"weatherCode"`
	PrecipitationProbability float64 `json:"precipitationProbability"`
	PrecipitationType        int     `json:"precipitationType"`
	SunriseTime              string  `json:"sunriseTime"`
	SunsetTime               string  `json:"sunsetTime"`
	Visibility               float64 `json:"visibility"`
	CloudCover               float64 `json:"cloudCover"`
}

type timelineInterval struct {
	StartTime string         `json:"startTime"`
	Values    timelineValues `json:"values"`
}

func (p *TomorrowProvider) Daily(ctx context.Context, coord weather.Coordinate) ([]weather.DailyRecord, error) {
	intervals, err := p.timeline(ctx, coord, "1d", "nowPlus7d", dailyFields)
	if err != nil {
		return nil, err
	}

	records := make([]weather.DailyRecord, 0, len(intervals))
	for _, in := range intervals {
		v := in.Values
		records = append(records, weather.DailyRecord{
			Status:                   weather.StatusNormal,
			Date:                     in.StartTime,
			Temperature:              v.Temperature,
			TemperatureMin:           v.TemperatureMin,
			TemperatureMax:           v.TemperatureMax,
			WindSpeed:                v.WindSpeed,
			Humidity:                 v.Humidity,
			Pressure:                 v.PressureSeaLevel,
			UVIndex:                  v.UVIndex,
			WeatherCode:              weather.CodeFor(v.WeatherCode),
			PrecipitationProbability: v.PrecipitationProbability,
			PrecipitationType:        weather.PrecipitationTypeLabel(v.PrecipitationType),
			SunriseTime:              v.SunriseTime,
			SunsetTime:               v.SunsetTime,
			Visibility:               v.Visibility,
			CloudCover:               v.CloudCover,
		})
	}
	return records, nil
}

func (p *TomorrowProvider) Hourly(ctx context.Context, coord weather.Coordinate) ([]weather.HourlyRecord, error) {
	intervals, err := p.timeline(ctx, coord, "1h", "nowPlus5d", hourlyFields)
	if err != nil {
		return nil, err
	}

	records := make([]weather.HourlyRecord, 0, len(intervals))
	for _, in := range intervals {
		v := in.Values
		records = append(records, weather.HourlyRecord{
			Status:        weather.StatusNormal,
			Hour:          in.StartTime,
			Temperature:   v.Temperature,
			WindSpeed:     v.WindSpeed,
			WindDirection: v.WindDirection,
			Humidity:      v.Humidity,
			Pressure:      v.PressureSeaLevel,
		})
	}
	return records, nil
}

func (p *TomorrowProvider) timeline(ctx context.Context, coord weather.Coordinate, step, end string, fields []string) ([]timelineInterval, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("tomorrow.io api key is not configured")
	}

	values := url.Values{}
	values.Set("location", coord.String())
	for _, f := range fields {
		values.Add("fields", f)
	}
	values.Set("timesteps", step)
	values.Set("units", "imperial")
	values.Set("startTime", "now")
	values.Set("endTime", end)
	values.Set("timezone", "auto")
	values.Set("apikey", p.apiKey)
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Data *struct {
			Timelines []struct {
				Timestep  string             `json:"timestep"`
				Intervals []timelineInterval `json:"intervals"`
			} `json:"timelines"`
		} `json:"data"`
	}

	if err := getJSON(ctx, p.client, p.circuit, u, &payload); err != nil {
		return nil, fmt.Errorf("%s %s timeline: %w", p.name, step, err)
	}
	if payload.Data == nil || len(payload.Data.Timelines) == 0 {
		return nil, fmt.Errorf("%w: %s returned no %s timeline", weather.ErrIncompleteForecast, p.name, step)
	}
	return payload.Data.Timelines[0].Intervals, nil
}
