package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func sevenDays() weather.DailyForecast {
	out := make(weather.DailyForecast, weather.DailyDays)
	for i := range out {
		out[i] = weather.DailyRecord{
			Status:      weather.StatusNormal,
			Date:        fmt.Sprintf("2024-05-%02dT06:00:00-05:00", i+1),
			WeatherCode: weather.CodeFor(1000),
		}
	}
	return out
}

func TestFetchDaily(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather/daily", r.URL.Path)
		assert.Equal(t, "39.78", r.URL.Query().Get("lat"))
		assert.Equal(t, "-89.65", r.URL.Query().Get("lng"))
		_ = json.NewEncoder(w).Encode(sevenDays())
	}))
	defer srv.Close()

	forecast, err := NewClient(srv.URL).FetchDaily(context.Background(), weather.Coordinate{Lat: 39.78, Lng: -89.65})
	require.NoError(t, err)
	assert.Equal(t, sevenDays(), forecast)
}

func TestFetchDailyErrorSignal(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status error", http.StatusOK, `{"status":"error"}`},
		{"status error with 502", http.StatusBadGateway, `{"status":"error","message":"upstream"}`},
		{"unexpected object", http.StatusOK, `{"foo":"bar"}`},
		{"short forecast", http.StatusOK, `[{"status":"normal","date":"2024-05-01"}]`},
		{"garbage", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL).FetchDaily(context.Background(), weather.Coordinate{})
			assert.ErrorIs(t, err, ErrBackend)
			assert.NotErrorIs(t, err, ErrTransport)
		})
	}
}

func TestFetchHourly(t *testing.T) {
	hours := weather.HourlyForecast{
		{Status: weather.StatusNormal, Hour: "2024-05-01T00:00:00Z", Temperature: 60, WindDirection: 180},
		{Status: weather.StatusNormal, Hour: "2024-05-01T01:00:00Z", Temperature: 59, WindDirection: 190},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather/hourly", r.URL.Path)
		_ = json.NewEncoder(w).Encode(hours)
	}))
	defer srv.Close()

	forecast, err := NewClient(srv.URL).FetchHourly(context.Background(), weather.Coordinate{Lat: 1, Lng: 2})
	require.NoError(t, err)
	assert.Equal(t, hours, forecast)
}

func TestFetchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).FetchHourly(context.Background(), weather.Coordinate{})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, WithTimeout(50*time.Millisecond)).FetchDaily(context.Background(), weather.Coordinate{})
	assert.ErrorIs(t, err, ErrTransport)
}
