package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-month-history/internal/config"
	"github.com/i474232898/weather-month-history/internal/logging"
	"github.com/i474232898/weather-month-history/internal/weather"
	"github.com/i474232898/weather-month-history/internal/weather/providers"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	serveCmd := newServeCmd(&envFile)
	rootCmd := &cobra.Command{
		Use:          "weather-month-history",
		Short:        "Serve a month of historical hourly temperatures grouped by day",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}

	defaultEnv := os.Getenv("ENV_FILE")
	if defaultEnv == "" {
		defaultEnv = ".env"
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", defaultEnv, "path of the env file holding WEATHER_API_KEY and friends")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd, newFetchCmd(&envFile))
	return rootCmd
}

// loadConfig reads configuration and sets up logging from it.
func loadConfig(envFile string) (*config.AppConfig, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// buildService wires the configured provider into a weather.Service.
func buildService(cfg *config.AppConfig) (*weather.Service, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider, err := providers.New(cfg.Provider, providers.Options{
		Client:   httpClient,
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.APIURL,
		Units:    cfg.Units,
		Location: cfg.Location,
	})
	if err != nil {
		return nil, err
	}

	loc := cfg.Location
	return weather.NewService(provider,
		weather.WithClock(func() time.Time { return time.Now().In(loc) }),
		weather.WithConcurrency(cfg.FetchConcurrency),
	), nil
}
