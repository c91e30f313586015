package scheduler

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/models"
)

type noopPicks struct{}

func (noopPicks) Generate(ctx context.Context) (*models.PickSnapshot, []engine.Warning, error) {
	return &models.PickSnapshot{}, nil, nil
}

type noopProps struct{}

func (noopProps) Generate(ctx context.Context) (*models.PropSnapshot, error) {
	return &models.PropSnapshot{}, nil
}

func newTestScheduler() *Scheduler {
	return NewScheduler(noopPicks{}, noopProps{}, time.Minute, log.New(io.Discard, "", 0))
}

func TestSchedulerLifecycle(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.SchedulePicks("0 13 * * *"))
	require.NoError(t, s.ScheduleProps("30 13 * * *"))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())

	// Both jobs are daily, so the next run lands within 24 hours.
	next := s.GetNextRun()
	require.False(t, next.IsZero())
	assert.True(t, next.After(time.Now()))
	assert.True(t, next.Before(time.Now().Add(24*time.Hour+time.Minute)))

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop(), "stopping twice is a no-op")
}

func TestSchedulerRejectsBadExpression(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.SchedulePicks("not a cron line"))
}

func TestSchedulerStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start())
}

func TestSchedulerRejectsScheduleWhileRunning(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.SchedulePicks("@daily"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Error(t, s.ScheduleProps("@daily"))
}
