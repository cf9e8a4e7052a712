package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-month-history/internal/weather"
)

type stubProvider struct {
	err error
}

func (s stubProvider) Name() string { return "stub" }

func (s stubProvider) FetchDay(ctx context.Context, coords weather.Coordinates, day time.Time) ([]weather.HourlySample, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []weather.HourlySample{{Time: day, Temperature: 50}, {Time: day.Add(time.Hour), Temperature: 51}}, nil
}

func TestDisabledSchedulerDoesNothing(t *testing.T) {
	s := New(0, weather.DefaultCoordinates, weather.NewService(stubProvider{}))

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.False(t, s.Enabled())
	_, ok := s.LastProbe()
	assert.False(t, ok)
}

func TestProbeRecordsSuccess(t *testing.T) {
	s := New(time.Hour, weather.DefaultCoordinates, weather.NewService(stubProvider{}))

	s.probe()

	r, ok := s.LastProbe()
	require.True(t, ok)
	assert.True(t, r.Healthy)
	assert.Equal(t, 2, r.Samples)
	assert.Empty(t, r.Error)
}

func TestProbeRecordsFailure(t *testing.T) {
	s := New(time.Hour, weather.DefaultCoordinates, weather.NewService(stubProvider{err: errors.New("403 forbidden")}))

	s.probe()

	r, ok := s.LastProbe()
	require.True(t, ok)
	assert.False(t, r.Healthy)
	assert.Contains(t, r.Error, "403")
}

func TestStartRunsProbe(t *testing.T) {
	s := New(time.Hour, weather.DefaultCoordinates, weather.NewService(stubProvider{}))
	require.NoError(t, s.Start())
	defer s.Stop()

	// gocron runs the first occurrence immediately.
	assert.Eventually(t, func() bool {
		_, ok := s.LastProbe()
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}
