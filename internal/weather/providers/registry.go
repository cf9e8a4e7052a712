package providers

import (
	"fmt"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// Names lists the provider identifiers accepted by New.
var Names = []string{"darksky", "openmeteo", "weatherapi", "openweather"}

// RequiresKey reports whether the named provider needs an API key.
func RequiresKey(name string) bool {
	return name != "openmeteo"
}

// New builds the provider registered under name.
func New(name string, opts Options) (weather.Provider, error) {
	switch name {
	case "darksky":
		return NewDarkSkyProvider(opts), nil
	case "openmeteo":
		return NewOpenMeteoProvider(opts), nil
	case "weatherapi":
		return NewWeatherAPIProvider(opts), nil
	case "openweather":
		return NewOpenWeatherProvider(opts), nil
	default:
		return nil, fmt.Errorf("unknown weather provider %q", name)
	}
}
