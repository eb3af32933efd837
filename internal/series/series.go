// Package series reshapes forecast records into the arrays the charts plot.
// Every output array has exactly one element per input record, in input order.
package series

import (
	"fmt"
	"time"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// Range is the daily temperature range series.
type Range struct {
	Timestamps []int64      `json:"timestamps"`
	Ranges     [][2]float64 `json:"ranges"` // [min, max]
}

// Meteogram holds one parallel array per hourly metric.
type Meteogram struct {
	Timestamps    []int64   `json:"timestamps"`
	Temperature   []float64 `json:"temp"`
	WindSpeed     []float64 `json:"windSpeed"`
	WindDirection []float64 `json:"windDirection"`
	Humidity      []float64 `json:"humidity"`
	Pressure      []float64 `json:"pressure"`
}

// Len returns the common length of the series, or an error if the arrays disagree.
func (m Meteogram) Len() (int, error) {
	n := len(m.Timestamps)
	for _, l := range []int{len(m.Temperature), len(m.WindSpeed), len(m.WindDirection), len(m.Humidity), len(m.Pressure)} {
		if l != n {
			return 0, fmt.Errorf("meteogram series lengths differ: %d vs %d", l, n)
		}
	}
	return n, nil
}

// Len returns the common length of the series, or an error if the arrays disagree.
func (r Range) Len() (int, error) {
	if len(r.Ranges) != len(r.Timestamps) {
		return 0, fmt.Errorf("range series lengths differ: %d vs %d", len(r.Ranges), len(r.Timestamps))
	}
	return len(r.Timestamps), nil
}

// DailyToRange pairs (min, max) temperature with the epoch-millisecond date of each day.
func DailyToRange(forecast weather.DailyForecast) (Range, error) {
	out := Range{
		Timestamps: make([]int64, len(forecast)),
		Ranges:     make([][2]float64, len(forecast)),
	}
	for i, day := range forecast {
		ts, err := parseTimestamp(day.Date)
		if err != nil {
			return Range{}, fmt.Errorf("day %d: %w", i, err)
		}
		out.Timestamps[i] = ts
		out.Ranges[i] = [2]float64{day.TemperatureMin, day.TemperatureMax}
	}
	return out, nil
}

// HourlyToMeteogram splits hourly records into parallel metric arrays.
func HourlyToMeteogram(forecast weather.HourlyForecast) (Meteogram, error) {
	n := len(forecast)
	out := Meteogram{
		Timestamps:    make([]int64, n),
		Temperature:   make([]float64, n),
		WindSpeed:     make([]float64, n),
		WindDirection: make([]float64, n),
		Humidity:      make([]float64, n),
		Pressure:      make([]float64, n),
	}
	for i, hour := range forecast {
		ts, err := parseTimestamp(hour.Hour)
		if err != nil {
			return Meteogram{}, fmt.Errorf("hour %d: %w", i, err)
		}
		out.Timestamps[i] = ts
		out.Temperature[i] = hour.Temperature
		out.WindSpeed[i] = hour.WindSpeed
		out.WindDirection[i] = hour.WindDirection
		out.Humidity[i] = hour.Humidity
		out.Pressure[i] = hour.Pressure
	}
	return out, nil
}

// parseTimestamp converts an RFC 3339 time (or a bare YYYY-MM-DD date, read as
// UTC midnight) to epoch milliseconds.
func parseTimestamp(s string) (int64, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UnixMilli(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UnixMilli(), nil
	}
	return 0, fmt.Errorf("invalid timestamp %q", s)
}
