package weather

import (
	"context"
	"time"
)

// Provider abstracts a historical hourly weather source (e.g. Dark Sky, Open-Meteo, WeatherAPI).
type Provider interface {
	Name() string
	// FetchDay issues exactly one upstream request for the day starting at day
	// and returns its hourly samples. Failures wrap ErrUpstream.
	FetchDay(ctx context.Context, coords Coordinates, day time.Time) ([]HourlySample, error)
}
