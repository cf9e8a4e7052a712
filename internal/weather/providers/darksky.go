package providers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// DarkSkyProvider speaks the Dark Sky time machine protocol. Compatible hosts
// (e.g. Pirate Weather) work by overriding the base URL.
type DarkSkyProvider struct {
	name    string
	opts    Options
	baseURL string
	circuit *gobreaker.CircuitBreaker
}

func NewDarkSkyProvider(opts Options) *DarkSkyProvider {
	return &DarkSkyProvider{
		name:    "darksky",
		opts:    opts,
		baseURL: strings.TrimRight(opts.baseURL("https://api.darksky.net/forecast"), "/"),
		circuit: newCircuit("darksky"),
	}
}

func (p *DarkSkyProvider) Name() string {
	return p.name
}

type darkSkyPayload struct {
	Hourly *struct {
		Data []struct {
			Time        int64    `json:"time"`
			Temperature *float64 `json:"temperature"`
		} `json:"data"`
	} `json:"hourly"`
}

func (p *DarkSkyProvider) FetchDay(ctx context.Context, coords weather.Coordinates, day time.Time) ([]weather.HourlySample, error) {
	if p.opts.APIKey == "" {
		return nil, upstreamErr(p.name, fmt.Errorf("darksky api key is not configured"))
	}

	// Only the hourly block is wanted.
	values := url.Values{}
	values.Set("exclude", "currently,minutely,daily,flags,alerts")
	values.Set("units", string(p.opts.Units))

	u := fmt.Sprintf("%s/%s/%s,%s?%s",
		p.baseURL,
		url.PathEscape(p.opts.APIKey),
		coords.String(),
		strconv.FormatInt(day.Unix(), 10),
		values.Encode(),
	)

	var payload darkSkyPayload
	if err := getJSON(ctx, p.opts.Client, p.circuit, u, &payload); err != nil {
		return nil, err
	}
	if payload.Hourly == nil {
		return nil, malformed(p.name, "missing hourly block")
	}

	loc := p.opts.location()
	samples := make([]weather.HourlySample, 0, len(payload.Hourly.Data))
	for _, rec := range payload.Hourly.Data {
		if rec.Temperature == nil {
			log.Debug().Str("provider", p.name).Int64("time", rec.Time).Msg("hourly record without temperature skipped")
			continue
		}
		samples = append(samples, weather.HourlySample{
			Time:        time.Unix(rec.Time, 0).In(loc),
			Temperature: *rec.Temperature,
		})
	}
	return samples, nil
}
