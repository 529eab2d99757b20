// Package maintenance runs periodic housekeeping on the SQLite store:
// a WAL checkpoint so the log does not grow without bound, and a quick
// integrity check that surfaces medium corruption in the logs early.
package maintenance

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/dkasyanov/shoebox/internal/database"
)

// Scheduler manages the periodic maintenance job.
type Scheduler struct {
	db       *database.Database
	schedule string
	enabled  bool

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(db *database.Database, schedule string, enabled bool) *Scheduler {
	return &Scheduler{
		db:       db,
		schedule: schedule,
		enabled:  enabled,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if maintenance is enabled.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.enabled {
		log.Printf("Maintenance scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.RunMaintenance()
	})
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Maintenance scheduler: started with schedule '%s'", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running job up to the context
// deadline.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		log.Printf("Maintenance scheduler: shutdown timed out waiting for running job")
	}
	s.isRunning = false
	log.Printf("Maintenance scheduler: stopped")
}

// IsRunning reports whether the scheduler has been started.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// RunMaintenance executes one maintenance pass. It is also called by the
// cron entry.
func (s *Scheduler) RunMaintenance() {
	log.Printf("Maintenance: starting pass")

	if err := s.db.DB.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		log.Printf("Maintenance: WAL checkpoint failed: %v", err)
	}

	var result string
	if err := s.db.DB.Raw("PRAGMA quick_check").Scan(&result).Error; err != nil {
		log.Printf("Maintenance: integrity check failed to run: %v", err)
		return
	}
	if result != "ok" {
		log.Printf("Maintenance: integrity check reported: %s", result)
		return
	}

	log.Printf("Maintenance: pass completed, integrity ok")
}
