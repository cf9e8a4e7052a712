package providers

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// OpenMeteoProvider implements weather.Provider for the Open-Meteo historical archive.
// It needs no API key.
type OpenMeteoProvider struct {
	name    string
	opts    Options
	baseURL string
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(opts Options) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		opts:    opts,
		baseURL: opts.baseURL("https://archive-api.open-meteo.com/v1/archive"),
		circuit: newCircuit("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoPayload struct {
	Hourly *struct {
		Time          []int64    `json:"time"`
		Temperature2m []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

func (p *OpenMeteoProvider) FetchDay(ctx context.Context, coords weather.Coordinates, day time.Time) ([]weather.HourlySample, error) {
	loc := p.opts.location()
	// Request in GMT the UTC dates covering [day, nextDay) and trim to that window.
	nextDay := day.AddDate(0, 0, 1)

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", coords.Lat))
	values.Set("longitude", fmt.Sprintf("%f", coords.Long))
	values.Set("start_date", day.UTC().Format(time.DateOnly))
	values.Set("end_date", nextDay.Add(-time.Second).UTC().Format(time.DateOnly))
	values.Set("hourly", "temperature_2m")
	values.Set("timeformat", "unixtime")
	values.Set("timezone", "GMT")
	if p.opts.Units == weather.UnitsUS {
		values.Set("temperature_unit", "fahrenheit")
	}

	var payload openMeteoPayload
	if err := getJSON(ctx, p.opts.Client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.Hourly == nil {
		return nil, malformed(p.name, "missing hourly block")
	}
	if len(payload.Hourly.Time) != len(payload.Hourly.Temperature2m) {
		return nil, malformed(p.name, "hourly time/temperature length mismatch (%d != %d)",
			len(payload.Hourly.Time), len(payload.Hourly.Temperature2m))
	}

	samples := make([]weather.HourlySample, 0, len(payload.Hourly.Time))
	for i, ts := range payload.Hourly.Time {
		at := time.Unix(ts, 0)
		temp := payload.Hourly.Temperature2m[i]
		if temp == nil || at.Before(day) || !at.Before(nextDay) {
			continue
		}
		samples = append(samples, weather.HourlySample{
			Time:        at.In(loc),
			Temperature: *temp,
		})
	}
	return samples, nil
}
