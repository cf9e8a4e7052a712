package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap's hourly city history.
type OpenWeatherProvider struct {
	name    string
	opts    Options
	baseURL string
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(opts Options) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		opts:    opts,
		baseURL: opts.baseURL("https://history.openweathermap.org/data/2.5/history/city"),
		circuit: newCircuit("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherPayload struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

func (p *OpenWeatherProvider) FetchDay(ctx context.Context, coords weather.Coordinates, day time.Time) ([]weather.HourlySample, error) {
	if p.opts.APIKey == "" {
		return nil, upstreamErr(p.name, fmt.Errorf("openweather api key is not configured"))
	}

	units := "imperial"
	if p.opts.Units == weather.UnitsSI {
		units = "metric"
	}

	values := url.Values{}
	values.Set("appid", p.opts.APIKey)
	values.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coords.Long, 'f', -1, 64))
	values.Set("type", "hour")
	values.Set("start", strconv.FormatInt(day.Unix(), 10))
	values.Set("end", strconv.FormatInt(day.AddDate(0, 0, 1).Unix(), 10))
	values.Set("units", units)

	var payload openWeatherPayload
	if err := getJSON(ctx, p.opts.Client, p.circuit, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.List == nil {
		return nil, malformed(p.name, "missing list")
	}

	loc := p.opts.location()
	samples := make([]weather.HourlySample, 0, len(payload.List))
	for _, item := range payload.List {
		if item.Main.Temp == nil {
			continue
		}
		samples = append(samples, weather.HourlySample{
			Time:        time.Unix(item.Dt, 0).In(loc),
			Temperature: *item.Main.Temp,
		})
	}
	return samples, nil
}
