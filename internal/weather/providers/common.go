package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// Options carries what every provider needs to build and decode requests.
type Options struct {
	Client   *http.Client
	APIKey   string
	BaseURL  string // empty selects the provider's public endpoint
	Units    weather.Units
	Location *time.Location // samples are rendered in this location
}

// maxDayFetches is the largest fan-out one month produces.
const maxDayFetches = 31

var (
	errUnexpected   = errors.New("unexpected status code")
	errRejected     = errors.New("request rejected by provider")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
	errMalformed    = errors.New("malformed response body")
)

// newCircuit builds the breaker shared by every request to one provider. It only
// trips on provider-side failures, and only after more consecutive failures than
// a single month can produce, so one caller's bad request cannot open it for others.
func newCircuit(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: maxDayFetches + 1,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > maxDayFetches
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, errRejected) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
	})
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) baseURL(def string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return def
}

// doRequest executes a single attempt through the circuit breaker. Non-2xx
// responses are failures; 4xx ones wrap errRejected. Every error returned wraps
// weather.ErrUpstream and never carries the request URL, which holds the API key.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, upstreamErr(cb.Name(), errNoHTTPClient)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req.WithContext(ctx))
		if execErr != nil {
			return nil, stripURL(execErr)
		}
		switch {
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %w: %d", errRejected, errUnexpected, resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			resp.Body.Close()
			return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, upstreamErr(cb.Name(), fmt.Errorf("%w: %v", errCircuitOpen, err))
		}
		return nil, upstreamErr(cb.Name(), err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, upstreamErr(cb.Name(), fmt.Errorf("unexpected result type from circuit breaker"))
	}
	return resp, nil
}

// getJSON performs a GET and decodes the body into out.
func getJSON(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return upstreamErr(cb.Name(), stripURL(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doRequest(ctx, client, cb, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return upstreamErr(cb.Name(), errors.Wrap(errMalformed, err.Error()))
	}
	return nil
}

// stripURL drops the URL from *url.Error messages, keeping the operation and cause.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

func upstreamErr(provider string, err error) error {
	return errors.Wrapf(fmt.Errorf("%w: %w", weather.ErrUpstream, err), "%s", provider)
}

func malformed(provider, format string, args ...any) error {
	return upstreamErr(provider, errors.Wrapf(errMalformed, format, args...))
}
