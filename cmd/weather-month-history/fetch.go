package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-month-history/internal/weather"
)

func newFetchCmd(envFile *string) *cobra.Command {
	var lat, long float64

	cmd := &cobra.Command{
		Use:   "fetch <month>",
		Short: "Print one month of hourly temperatures grouped by day as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}

			month, err := weather.ParseMonth(args[0])
			if err != nil {
				return err
			}

			coords := cfg.DefaultCoords
			if cmd.Flags().Changed("lat") {
				coords.Lat = lat
			}
			if cmd.Flags().Changed("long") {
				coords.Long = long
			}

			service, err := buildService(cfg)
			if err != nil {
				return err
			}

			grouped, err := service.MonthlyTemps(cmd.Context(), month, coords)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(weather.MonthResponse{args[0]: grouped})
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude (defaults to DEFAULT_LAT)")
	cmd.Flags().Float64Var(&long, "long", 0, "longitude (defaults to DEFAULT_LONG)")
	return cmd
}
