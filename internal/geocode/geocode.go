package geocode

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// ErrNotFound is returned when a place cannot be turned into coordinates.
var ErrNotFound = errors.New("location not found")

// Resolver turns a city/country pair into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, city, country string) (weather.Coordinates, error)
}

// GoogleResolver uses the Google Geocoding API through kelvins/geocoder.
type GoogleResolver struct {
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

// geocoder keeps its key in a package variable; serialize access to it.
var keyMu sync.Mutex

func NewGoogleResolver(apiKey string) *GoogleResolver {
	return &GoogleResolver{apiKey: apiKey, lookup: geocoder.Geocoding}
}

func (r *GoogleResolver) Resolve(ctx context.Context, city, country string) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	keyMu.Lock()
	geocoder.ApiKey = r.apiKey
	loc, err := r.lookup(geocoder.Address{City: city, Country: country})
	keyMu.Unlock()
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("geocode %s, %s: %w: %w", city, country, ErrNotFound, err)
	}
	return weather.Coordinates{Lat: loc.Latitude, Long: loc.Longitude}, nil
}
