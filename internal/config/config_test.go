package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-month-history/internal/weather"
)

var configKeys = []string{
	"PORT", "API_PREFIX", "WEATHER_PROVIDER", "WEATHER_API_KEY", "WEATHER_API_URL", "WEATHER_UNITS",
	"TIMEZONE", "HTTP_TIMEOUT", "FETCH_CONCURRENCY", "DEFAULT_LAT", "DEFAULT_LONG",
	"CORS_ALLOW_ORIGINS", "PROBE_INTERVAL", "GEOCODER_API_KEY", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every key Load reads; t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaultsFromEnvFile(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "WEATHER_API_KEY=abc123\nTIMEZONE=UTC\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "/v1", cfg.Prefix)
	assert.Equal(t, "darksky", cfg.Provider)
	assert.Equal(t, weather.UnitsUS, cfg.Units)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.ProbeInterval)
	assert.Zero(t, cfg.FetchConcurrency)
	assert.Equal(t, weather.DefaultCoordinates, cfg.DefaultCoords)
	assert.Equal(t, "*", cfg.CORSAllowOrigins)
}

func TestLoadMissingEnvFileIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfig)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoadMissingEnvFileWithKeyInEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_API_KEY", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
}

func TestLoadKeylessProvider(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "WEATHER_PROVIDER=openmeteo\nWEATHER_UNITS=si\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openmeteo", cfg.Provider)
	assert.Equal(t, weather.UnitsSI, cfg.Units)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "WEATHER_API_KEY=k\n")
	t.Setenv("PORT", "8081")
	t.Setenv("FETCH_CONCURRENCY", "4")
	t.Setenv("PROBE_INTERVAL", "10m")
	t.Setenv("DEFAULT_LAT", "51.5")
	t.Setenv("DEFAULT_LONG", "-0.12")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 10*time.Minute, cfg.ProbeInterval)
	assert.Equal(t, weather.Coordinates{Lat: 51.5, Long: -0.12}, cfg.DefaultCoords)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"provider": "WEATHER_PROVIDER=smarch\n",
		"units":    "WEATHER_UNITS=kelvin\n",
		"timezone": "TIMEZONE=Mars/Olympus\n",
		"timeout":  "HTTP_TIMEOUT=soon\n",
		"lat":      "DEFAULT_LAT=north\n",
	}
	for name, extra := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			path := writeEnvFile(t, "WEATHER_API_KEY=k\n"+extra)

			_, err := Load(path)
			assert.ErrorIs(t, err, ErrConfig)
		})
	}
}
