package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) CleanupStale(context.Context) (int, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestScheduler_RunsCleanupOnSchedule(t *testing.T) {
	cleaner := &countingCleaner{}
	s := New(cleaner, "@every 1s")

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := New(&countingCleaner{}, "every now and then")

	assert.Error(t, s.Start(context.Background()))
}

func TestScheduler_DefaultSpec(t *testing.T) {
	assert.Equal(t, DefaultCleanupSpec, New(&countingCleaner{}, "").spec)
}

func TestRunCleanup(t *testing.T) {
	t.Run("Errors are logged only", func(t *testing.T) {
		cleaner := &countingCleaner{err: errors.New("db down")}
		s := New(cleaner, "")

		assert.NotPanics(t, func() { s.runCleanup(context.Background()) })
		assert.EqualValues(t, 1, cleaner.calls.Load())
	})

	t.Run("Skipped after shutdown", func(t *testing.T) {
		cleaner := &countingCleaner{}
		s := New(cleaner, "")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		s.runCleanup(ctx)

		assert.EqualValues(t, 0, cleaner.calls.Load())
	})
}
