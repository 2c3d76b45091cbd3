// Package scheduler periodically triggers the same stateless mail scan the
// HTTP endpoint exposes, once per connected user. It is optional and
// disabled by default; the request-triggered path stays the primary one.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"stylescout-go/config"
	"stylescout-go/internal/service"
)

// UserLister returns the users with a connected mail account.
type UserLister interface {
	ListCredentialUserIDs() ([]uint, error)
}

// Scheduler manages the periodic mail scan
type Scheduler struct {
	cron      *cron.Cron
	entryID   cron.EntryID
	config    *config.SchedulerConfig
	users     UserLister
	scans     *service.ScanService
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
	mu        sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler(cfg *config.SchedulerConfig, users UserLister, scans *service.ScanService) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		config: cfg,
		users:  users,
		scans:  scans,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	// Recreate the context in case the scheduler was stopped before.
	s.ctx, s.cancel = context.WithCancel(context.Background())

	schedule := fmt.Sprintf("0 */%d * * * *", s.config.IntervalMinutes)

	entryID, err := s.cron.AddFunc(schedule, s.scanAll)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.isRunning = true

	logrus.Infof("Scheduler started with interval: %d minutes", s.config.IntervalMinutes)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	// Cancel context to stop any running operations
	s.cancel()

	// Stop the cron scheduler
	ctx := s.cron.Stop()

	// Wait for all jobs to complete
	select {
	case <-ctx.Done():
		logrus.Info("Scheduler stopped gracefully")
	case <-time.After(30 * time.Second):
		logrus.Warn("Scheduler stop timeout, forcing shutdown")
	}

	s.cron.Remove(s.entryID)
	s.isRunning = false
	return nil
}

// IsRunning returns whether the scheduler is running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// scanAll runs one scan per connected user, sequentially. A failed scan
// for one user is logged and does not abort the others.
func (s *Scheduler) scanAll() {
	s.wg.Add(1)
	defer s.wg.Done()

	s.mu.RLock()
	if !s.isRunning {
		s.mu.RUnlock()
		return
	}
	ctx := s.ctx
	s.mu.RUnlock()

	logrus.Info("Starting scheduled mail scan cycle")
	startTime := time.Now()

	userIDs, err := s.users.ListCredentialUserIDs()
	if err != nil {
		logrus.Errorf("Failed to list connected users: %v", err)
		return
	}

	for _, userID := range userIDs {
		select {
		case <-ctx.Done():
			logrus.Info("Scheduled scan cycle cancelled")
			return
		default:
		}

		if _, err := s.scans.Scan(ctx, userID, 0); err != nil {
			logrus.Errorf("Scheduled scan failed for user %d: %v", userID, err)
		}
	}

	logrus.Infof("Scheduled mail scan cycle completed in %v", time.Since(startTime))
}

// GetNextRun returns the time of the next scheduled run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}

	entry := s.cron.Entry(s.entryID)
	return entry.Next
}

// GetLastRun returns the time of the last run
func (s *Scheduler) GetLastRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return time.Time{}
	}

	entry := s.cron.Entry(s.entryID)
	return entry.Prev
}

// Wait waits for in-flight scan cycles to finish
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
