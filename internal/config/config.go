package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port     string
	LogLevel string

	// HTTPTimeout bounds every outbound call (geocoding, ip location, upstream
	// forecasts and the dashboard's own backend).
	HTTPTimeout time.Duration

	// BackendURL is where the dashboard finds /weather/daily and /weather/hourly.
	BackendURL string

	TomorrowAPIKey string
	TomorrowURL    string

	GoogleAPIKey string
	GeocodeURL   string

	IPLocationURL   string
	IPLocationToken string

	StaticDir string

	// Page session retention.
	SessionMaxAge        time.Duration
	SessionSweepInterval time.Duration
	SessionMax           int
}

// Load reads configuration from a .env file and the environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Err(err).Msg("no .env file found or error loading it")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("TOMORROW_URL", "https://api.tomorrow.io/v4/timelines")
	v.SetDefault("GEOCODE_URL", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("IPLOCATION_URL", "https://ipapi.co")
	v.SetDefault("STATIC_DIR", "static")
	v.SetDefault("SESSION_MAX_AGE", "30m")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")
	v.SetDefault("SESSION_MAX", 1000)
	v.AutomaticEnv()

	cfg := &AppConfig{
		Port:            v.GetString("PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		BackendURL:      v.GetString("BACKEND_URL"),
		TomorrowAPIKey:  v.GetString("TOMORROW_API_KEY"),
		TomorrowURL:     v.GetString("TOMORROW_URL"),
		GoogleAPIKey:    v.GetString("GOOGLE_API_KEY"),
		GeocodeURL:      v.GetString("GEOCODE_URL"),
		IPLocationURL:   v.GetString("IPLOCATION_URL"),
		IPLocationToken: v.GetString("IPLOCATION_TOKEN"),
		StaticDir:       v.GetString("STATIC_DIR"),
		SessionMax:      v.GetInt("SESSION_MAX"),
	}

	var err error
	if cfg.HTTPTimeout, err = duration(v, "HTTP_TIMEOUT"); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = duration(v, "SESSION_MAX_AGE"); err != nil {
		return nil, err
	}
	if cfg.SessionSweepInterval, err = duration(v, "SESSION_SWEEP_INTERVAL"); err != nil {
		return nil, err
	}

	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://127.0.0.1:" + cfg.Port
	}

	return cfg, nil
}

// duration parses key strictly; viper's GetDuration would turn garbage into 0.
func duration(v *viper.Viper, key string) (time.Duration, error) {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
