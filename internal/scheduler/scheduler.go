// Package scheduler drives the daily regeneration jobs on UTC cron
// schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yourusername/diamond-edge/internal/engine"
	"github.com/yourusername/diamond-edge/internal/models"
)

// PicksRunner triggers a pick generation pass.
type PicksRunner interface {
	Generate(ctx context.Context) (*models.PickSnapshot, []engine.Warning, error)
}

// PropsRunner triggers a prop ranking pass.
type PropsRunner interface {
	Generate(ctx context.Context) (*models.PropSnapshot, error)
}

// Scheduler manages the scheduled regeneration jobs
type Scheduler struct {
	cron       *cron.Cron
	picks      PicksRunner
	props      PropsRunner
	logger     *log.Logger
	jobTimeout time.Duration
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
}

// NewScheduler creates a new scheduler. All jobs run in UTC.
func NewScheduler(picks PicksRunner, props PropsRunner, jobTimeout time.Duration, logger *log.Logger) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = time.Hour
	}
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		picks:      picks,
		props:      props,
		logger:     logger,
		jobTimeout: jobTimeout,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// SchedulePicks schedules the daily pick regeneration
func (s *Scheduler) SchedulePicks(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		s.logger.Printf("Starting scheduled pick generation")
		snapshot, warnings, err := s.picks.Generate(ctx)
		if err != nil {
			s.logger.Printf("Error during scheduled pick generation: %v", err)
			return
		}
		s.logger.Printf("Scheduled pick generation completed: %d games, %d warnings",
			len(snapshot.Results), len(warnings))
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled pick generation with cron expression: %s", cronExpression)

	return nil
}

// ScheduleProps schedules the daily prop ranking regeneration
func (s *Scheduler) ScheduleProps(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		s.logger.Printf("Starting scheduled prop ranking")
		snapshot, err := s.props.Generate(ctx)
		if err != nil {
			s.logger.Printf("Error during scheduled prop ranking: %v", err)
			return
		}
		s.logger.Printf("Scheduled prop ranking completed: %d props", len(snapshot.Props))
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Printf("Scheduled prop ranking with cron expression: %s", cronExpression)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Printf("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Printf("Scheduler stopped")

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
