package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeCompleter struct {
	count int64
	err   error
	at    time.Time
}

func (f *fakeCompleter) CompleteFinished(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return f.count, f.err
}

func TestCompleteFinishedBookings_Run(t *testing.T) {
	now := time.Date(2030, time.March, 4, 18, 30, 0, 0, time.UTC)
	repo := &fakeCompleter{count: 3}
	job := NewCompleteFinishedBookings(repo, logger.NewNop()).WithTimeProvider(fixedTime{now: now})

	count, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, now, repo.at)
}

func TestCompleteFinishedBookings_RunNothingToComplete(t *testing.T) {
	repo := &fakeCompleter{}
	job := NewCompleteFinishedBookings(repo, logger.NewNop())

	count, err := job.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCompleteFinishedBookings_RunError(t *testing.T) {
	repo := &fakeCompleter{err: errors.New("connection reset")}
	job := NewCompleteFinishedBookings(repo, logger.NewNop())

	_, err := job.Run(context.Background())

	assert.ErrorIs(t, err, ErrJobFailed)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(nil, logger.NewNop())
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob(CompleteBookingsJobName, "*/5 * * * *", time.Minute, noop))
	require.NoError(t, s.AddJob("hourly", "@every 1h", time.Minute, noop))
	assert.Equal(t, 2, s.Len())

	assert.ErrorIs(t, s.AddJob(" ", "* * * * *", time.Minute, noop), ErrEmptyJobName)
	assert.ErrorIs(t, s.AddJob("broken", "every minute", time.Minute, noop), ErrInvalidSchedule)
	assert.Equal(t, 2, s.Len())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC, logger.NewNop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, s.Stop(ctx))
}
