package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-month-history/internal/weather"
	"github.com/i474232898/weather-month-history/internal/weather/providers"
)

// ErrConfig marks startup configuration that prevents the service from running.
var ErrConfig = errors.New("configuration error")

type AppConfig struct {
	Port   string
	Prefix string

	// Upstream provider selection and credentials.
	Provider string
	APIKey   string
	APIURL   string // overrides the provider's public endpoint when set
	Units    weather.Units

	// Location decides where days start and how sample times are rendered.
	Location *time.Location

	HTTPTimeout time.Duration

	// FetchConcurrency caps per-request upstream calls (0 = unlimited).
	FetchConcurrency int

	DefaultCoords    weather.Coordinates
	CORSAllowOrigins string

	// ProbeInterval schedules the upstream health probe (0 = disabled).
	ProbeInterval time.Duration

	GeocoderAPIKey string

	LogLevel  string
	LogFormat string
}

// Load reads the env file (if present) and then the process environment.
// A missing env file is fatal only when it leaves a keyed provider without a key.
func Load(envFile string) (*AppConfig, error) {
	envErr := godotenv.Load(envFile)
	if envErr != nil {
		log.Info().Err(envErr).Str("file", envFile).Msg("no env file loaded")
	}

	cfg := &AppConfig{
		Port:             getenvDefault("PORT", "5000"),
		Prefix:           getenvDefault("API_PREFIX", "/v1"),
		Provider:         strings.ToLower(getenvDefault("WEATHER_PROVIDER", "darksky")),
		APIKey:           os.Getenv("WEATHER_API_KEY"),
		APIURL:           os.Getenv("WEATHER_API_URL"),
		Units:            weather.Units(strings.ToLower(getenvDefault("WEATHER_UNITS", string(weather.UnitsUS)))),
		CORSAllowOrigins: getenvDefault("CORS_ALLOW_ORIGINS", "*"),
		GeocoderAPIKey:   os.Getenv("GEOCODER_API_KEY"),
		LogLevel:         getenvDefault("LOG_LEVEL", "info"),
		LogFormat:        getenvDefault("LOG_FORMAT", "json"),
	}

	if !slices.Contains(providers.Names, cfg.Provider) {
		return nil, fmt.Errorf("%w: unknown WEATHER_PROVIDER %q", ErrConfig, cfg.Provider)
	}
	if providers.RequiresKey(cfg.Provider) && cfg.APIKey == "" {
		if envErr != nil {
			return nil, fmt.Errorf("%w: environment file %q does not exist and WEATHER_API_KEY is not set", ErrConfig, envFile)
		}
		return nil, fmt.Errorf("%w: WEATHER_API_KEY is required for provider %s", ErrConfig, cfg.Provider)
	}
	if cfg.Units != weather.UnitsUS && cfg.Units != weather.UnitsSI {
		return nil, fmt.Errorf("%w: WEATHER_UNITS must be us or si, got %q", ErrConfig, cfg.Units)
	}

	loc, err := time.LoadLocation(getenvDefault("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid TIMEZONE: %v", ErrConfig, err)
	}
	cfg.Location = loc

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("PROBE_INTERVAL", "0"); err != nil {
		return nil, err
	}

	cfg.FetchConcurrency = getenvInt("FETCH_CONCURRENCY", 0)

	cfg.DefaultCoords = weather.DefaultCoordinates
	if cfg.DefaultCoords.Lat, err = getenvFloat("DEFAULT_LAT", cfg.DefaultCoords.Lat); err != nil {
		return nil, err
	}
	if cfg.DefaultCoords.Long, err = getenvFloat("DEFAULT_LONG", cfg.DefaultCoords.Long); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", ErrConfig, key, err)
	}
	return d, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s: %v", ErrConfig, key, err)
	}
	return f, nil
}
