package weather

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// DailyDays is the number of days a DailyForecast always holds. Index 0 is today.
const DailyDays = 7

// IconDir is the URL prefix under which weather code icons are served.
const IconDir = "/static/Images/Weather Symbols for Weather Codes/"

// Record statuses as they appear on the wire.
const (
	StatusNormal = "normal"
	StatusError  = "error"
)

// Coordinate is a latitude/longitude pair identifying a location for weather lookup.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the coordinate the way upstream providers expect it ("lat, lng").
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + ", " + strconv.FormatFloat(c.Lng, 'f', -1, 64)
}

// WeatherCode pairs a human readable label with an icon file name.
// On the wire it is the tuple [label, icon].
type WeatherCode struct {
	Label string
	Icon  string
}

// IconPath returns the URL path of the icon for this code.
func (w WeatherCode) IconPath() string {
	return IconDir + w.Icon
}

func (w WeatherCode) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{w.Label, w.Icon})
}

func (w *WeatherCode) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = WeatherCode{}
		return nil
	}
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("weather code: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("weather code: expected [label, icon], got %d elements", len(pair))
	}
	w.Label, w.Icon = pair[0], pair[1]
	return nil
}

// DailyRecord is one calendar day of forecast data.
// Date, SunriseTime and SunsetTime are kept exactly as the upstream sent them.
type DailyRecord struct {
	Status                   string      `json:"status"`
	Date                     string      `json:"date"`
	Temperature              float64     `json:"temperature"`
	TemperatureMin           float64     `json:"temperatureMin"`
	TemperatureMax           float64     `json:"temperatureMax"`
	WindSpeed                float64     `json:"windSpeed"`
	Humidity                 float64     `json:"humidity"`
	Pressure                 float64     `json:"pressure"`
	UVIndex                  float64     `json:"uvIndex"`
	WeatherCode              WeatherCode `json:"weatherCode"`
	PrecipitationProbability float64     `json:"precipitationProbability"`
	PrecipitationType        string      `json:"precipitationType"`
	SunriseTime              string      `json:"sunriseTime"`
	SunsetTime               string      `json:"sunsetTime"`
	Visibility               float64     `json:"visibility"`
	CloudCover               float64     `json:"cloudCover"`
}

// DailyForecast is an ordered run of DailyDays records, ascending by date.
type DailyForecast []DailyRecord

// Validate checks the length invariant consumers rely on when indexing 0..6.
func (f DailyForecast) Validate() error {
	if len(f) != DailyDays {
		return fmt.Errorf("%w: daily forecast has %d days, want %d", ErrIncompleteForecast, len(f), DailyDays)
	}
	return nil
}

// HourlyRecord is one hour of forecast data.
type HourlyRecord struct {
	Status        string  `json:"status"`
	Hour          string  `json:"hour"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
}

// HourlyForecast is an ordered run of hourly records, ascending by time.
type HourlyForecast []HourlyRecord
