package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"

	"github.com/i474232898/weather-month-history/internal/weather"
)

// ProbeResult is the outcome of the most recent upstream probe.
type ProbeResult struct {
	CheckedAt time.Time `json:"checkedAt"`
	Healthy   bool      `json:"healthy"`
	Samples   int       `json:"samples"`
	Error     string    `json:"error,omitempty"`
}

// Scheduler periodically probes the upstream provider so /health can report on it.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	coords    weather.Coordinates
	interval  time.Duration
	timeout   time.Duration
	last      atomic.Pointer[ProbeResult]
}

// New creates a new Scheduler. An interval <= 0 disables probing.
func New(interval time.Duration, coords weather.Coordinates, service *weather.Service) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		coords:    coords,
		interval:  interval,
		timeout:   30 * time.Second,
	}
}

// Enabled reports whether probing was configured.
func (s *Scheduler) Enabled() bool {
	return s.interval > 0
}

// Start schedules the probe job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		log.Info().Msg("scheduler: upstream probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.probe)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// LastProbe returns the latest probe result, if one has completed.
func (s *Scheduler) LastProbe() (ProbeResult, bool) {
	r := s.last.Load()
	if r == nil {
		return ProbeResult{}, false
	}
	return *r, true
}

func (s *Scheduler) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	result := ProbeResult{CheckedAt: time.Now().UTC()}
	n, err := s.service.ProbeUpstream(ctx, s.coords)
	if err != nil {
		log.Warn().Err(err).Str("provider", s.service.ProviderName()).Msg("scheduler: upstream probe failed")
		result.Error = err.Error()
	} else {
		log.Debug().Int("samples", n).Msg("scheduler: upstream probe ok")
		result.Healthy = true
		result.Samples = n
	}
	s.last.Store(&result)
}
