package providers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// WeatherAPIProvider implements weather.Provider for WeatherAPI.com's history endpoint.
type WeatherAPIProvider struct {
	name    string
	opts    Options
	baseURL string
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(opts Options) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		opts:    opts,
		baseURL: opts.baseURL("https://api.weatherapi.com/v1/history.json"),
		circuit: newCircuit("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

type weatherAPIPayload struct {
	Forecast *struct {
		ForecastDay []struct {
			Hour []struct {
				TimeEpoch int64    `json:"time_epoch"`
				TempC     *float64 `json:"temp_c"`
				TempF     *float64 `json:"temp_f"`
			} `json:"hour"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (p *WeatherAPIProvider) FetchDay(ctx context.Context, coords weather.Coordinates, day time.Time) ([]weather.HourlySample, error) {
	if p.opts.APIKey == "" {
		return nil, upstreamErr(p.name, fmt.Errorf("weatherapi api key is not configured"))
	}

	loc := p.opts.location()

	values := url.Values{}
	values.Set("key", p.opts.APIKey)
	// WeatherAPI uses "q" for location; it accepts "lat,lon".
	values.Set("q", coords.String())
	values.Set("dt", day.In(loc).Format(time.DateOnly))

	var payload weatherAPIPayload
	if err := getJSON(ctx, p.opts.Client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Forecast == nil || len(payload.Forecast.ForecastDay) == 0 {
		return nil, malformed(p.name, "missing forecastday")
	}

	var samples []weather.HourlySample
	for _, fd := range payload.Forecast.ForecastDay {
		for _, h := range fd.Hour {
			temp := h.TempF
			if p.opts.Units == weather.UnitsSI {
				temp = h.TempC
			}
			if temp == nil {
				log.Debug().Str("provider", p.name).Int64("time", h.TimeEpoch).Msg("hour without temperature skipped")
				continue
			}
			samples = append(samples, weather.HourlySample{
				Time:        time.Unix(h.TimeEpoch, 0).In(loc),
				Temperature: *temp,
			})
		}
	}
	return samples, nil
}
