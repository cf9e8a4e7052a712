package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-month-history/internal/api/http"
	"github.com/i474232898/weather-month-history/internal/geocode"
	"github.com/i474232898/weather-month-history/internal/scheduler"
)

func newServeCmd(envFile *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}

			service, err := buildService(cfg)
			if err != nil {
				return err
			}

			// Upstream probe feeding /health.
			sched := scheduler.New(cfg.ProbeInterval, cfg.DefaultCoords, service)
			if err := sched.Start(); err != nil {
				return err
			}
			defer sched.Stop()

			// Cancelled on SIGINT/SIGTERM; also cancels in-flight upstream calls.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := httpapi.Options{
				BaseContext:   ctx,
				Prefix:        cfg.Prefix,
				DefaultCoords: cfg.DefaultCoords,
				AllowOrigins:  cfg.CORSAllowOrigins,
				Probe:         sched,
			}
			if cfg.GeocoderAPIKey != "" {
				opts.Geocoder = geocode.NewGoogleResolver(cfg.GeocoderAPIKey)
			}
			app := httpapi.NewServer(service, opts)

			log.Info().
				Str("port", cfg.Port).
				Str("prefix", cfg.Prefix).
				Str("provider", service.ProviderName()).
				Msg("server listening")
			return runServer(ctx, app, ":"+cfg.Port)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "listen port (overrides PORT)")
	return cmd
}

// runServer listens on addr until ctx is done, then shuts down gracefully.
// A listen failure is returned so the process exits non-zero.
func runServer(ctx context.Context, app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	return nil
}
