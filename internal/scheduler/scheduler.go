// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSpec purges stale uploads hourly when no spec is configured.
const DefaultCleanupSpec = "@every 1h"

// UploadCleaner purges resume uploads that were never completed.
// services.ResumeService satisfies it.
type UploadCleaner interface {
	CleanupStale(ctx context.Context) (int, error)
}

// Scheduler wraps robfig/cron and owns the maintenance jobs.
type Scheduler struct {
	cron    *cron.Cron
	cleaner UploadCleaner
	spec    string // cron spec, e.g. "@every 1h"
}

// New creates a Scheduler that runs the upload cleanup on spec.
func New(cleaner UploadCleaner, spec string) *Scheduler {
	if spec == "" {
		spec = DefaultCleanupSpec
	}
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		cleaner: cleaner,
		spec:    spec,
	}
}

// Start registers the job and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCleanup(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, spec: %s", s.spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

func (s *Scheduler) runCleanup(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n, err := s.cleaner.CleanupStale(ctx)
	if err != nil {
		log.Printf("[scheduler] Upload cleanup error: %v", err)
		return
	}
	if n > 0 {
		log.Printf("[scheduler] Purged %d stale upload(s)", n)
	}
}
