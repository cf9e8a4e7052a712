package weather

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Service fans a month out into per-day provider calls and shapes the result.
type Service struct {
	provider    Provider
	now         func() time.Time
	concurrency int
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used to resolve which year a month belongs to.
// The returned time's location also decides where days start.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// WithConcurrency caps simultaneous provider calls per request. n <= 0 means no cap.
func WithConcurrency(n int) ServiceOption {
	return func(s *Service) {
		s.concurrency = n
	}
}

// NewService creates a new Service.
func NewService(provider Provider, opts ...ServiceOption) *Service {
	s := &Service{
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName reports which upstream the service talks to.
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// GetMonthlyTempsByDay fetches every day of the resolved month concurrently.
// Results are in day order. A single failed day fails the whole call; in-flight
// calls for the other days are left to finish.
func (s *Service) GetMonthlyTempsByDay(ctx context.Context, month time.Month, coords Coordinates) ([][]HourlySample, error) {
	days := slices.Collect(DaysOfMonth(month, s.now()))

	log.Debug().
		Str("provider", s.provider.Name()).
		Str("month", month.String()).
		Str("coords", coords.String()).
		Int("days", len(days)).
		Msg("fetching monthly temperatures")

	results := make([][]HourlySample, len(days))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, day := range days {
		g.Go(func() error {
			samples, err := s.provider.FetchDay(ctx, coords, day)
			if err != nil {
				log.Warn().Err(err).
					Str("provider", s.provider.Name()).
					Time("day", day).
					Msg("day fetch failed")
				return fmt.Errorf("fetch %s: %w", day.Format(time.DateOnly), err)
			}
			results[i] = samples
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// MonthlyTemps runs the aggregation and groups the samples by calendar day.
func (s *Service) MonthlyTemps(ctx context.Context, month time.Month, coords Coordinates) (*GroupedTemps, error) {
	perDay, err := s.GetMonthlyTempsByDay(ctx, month, coords)
	if err != nil {
		return nil, err
	}
	return FormatMonthlyTemps(perDay), nil
}

// ProbeUpstream fetches yesterday's samples to check that the provider answers.
func (s *Service) ProbeUpstream(ctx context.Context, coords Coordinates) (int, error) {
	now := s.now()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	samples, err := s.provider.FetchDay(ctx, coords, day)
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}
