package monitor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/gptboost/pkg/boost/monitor"
)

// fakeSampler returns canned readings, sleeping briefly per sample so the
// deadline loop takes a bounded number of them.
type fakeSampler struct {
	readings []monitor.Reading
	next     int
	err      error
	delay    time.Duration
}

func (s *fakeSampler) Sample(ctx context.Context) (monitor.Reading, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return monitor.Reading{}, ctx.Err()
		}
	}
	if s.err != nil {
		return monitor.Reading{}, s.err
	}
	r := s.readings[s.next%len(s.readings)]
	s.next++
	return r, nil
}

func TestRun_Averages(t *testing.T) {
	sampler := &fakeSampler{
		readings: []monitor.Reading{
			{CPU: 10, Memory: 40},
			{CPU: 30, Memory: 60},
		},
		delay: 20 * time.Millisecond,
	}
	m := monitor.New(monitor.Options{Sampler: sampler})

	summary, err := m.Run(context.Background(), 100*time.Millisecond)
	require.NoError(t, err)

	assert.Greater(t, summary.Samples, 1)
	assert.InDelta(t, 20, summary.AvgCPU, 10)
	assert.InDelta(t, 50, summary.AvgMemory, 10)
	assert.False(t, summary.HighUsage)
	assert.Equal(t, 100*time.Millisecond, summary.Duration)
}

func TestRun_HighUsage(t *testing.T) {
	sampler := &fakeSampler{
		readings: []monitor.Reading{{CPU: 95, Memory: 50}},
		delay:    10 * time.Millisecond,
	}
	m := monitor.New(monitor.Options{Sampler: sampler})

	summary, err := m.Run(context.Background(), 30*time.Millisecond)
	require.NoError(t, err)
	assert.True(t, summary.HighUsage)
}

func TestRun_ZeroDuration(t *testing.T) {
	m := monitor.New(monitor.Options{Sampler: &fakeSampler{
		readings: []monitor.Reading{{CPU: 10, Memory: 10}},
	}})

	summary, err := m.Run(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, summary.Samples)
	assert.Zero(t, summary.AvgCPU)
}

func TestRun_SamplerError(t *testing.T) {
	m := monitor.New(monitor.Options{Sampler: &fakeSampler{err: errors.New("perf counters unavailable")}})

	_, err := m.Run(context.Background(), 50*time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sampling resources")
}

func TestRun_CancellationStopsEarly(t *testing.T) {
	sampler := &fakeSampler{
		readings: []monitor.Reading{{CPU: 10, Memory: 10}},
		delay:    10 * time.Millisecond,
	}
	m := monitor.New(monitor.Options{Sampler: sampler})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	summary, err := m.Run(ctx, 5*time.Second)
	require.NoError(t, err, "cancellation is not an error")
	assert.Less(t, time.Since(start), time.Second)
	assert.Greater(t, summary.Samples, 0)
}

func TestRun_OnReadingCallback(t *testing.T) {
	var seen []monitor.Reading
	sampler := &fakeSampler{
		readings: []monitor.Reading{{CPU: 12, Memory: 34}},
		delay:    10 * time.Millisecond,
	}
	m := monitor.New(monitor.Options{
		Sampler:   sampler,
		OnReading: func(r monitor.Reading) { seen = append(seen, r) },
	})

	summary, err := m.Run(context.Background(), 30*time.Millisecond)
	require.NoError(t, err)
	assert.Len(t, seen, summary.Samples)
}
