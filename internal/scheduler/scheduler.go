// Package scheduler runs the periodic housekeeping of the listing service:
// sweeping idle viewer sessions and keeping the cached job page warm.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"job-listing/internal/domain/job"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type SessionSweeper interface {
	Sweep(idle time.Duration) []uuid.UUID
}

// SessionNotifier is told about every swept session so attached sockets
// can be closed.
type SessionNotifier interface {
	CloseSession(id uuid.UUID)
}

type JobsRefresher interface {
	RefreshJobs(ctx context.Context) ([]*job.Job, error)
}

type Options struct {
	SweepSpec string
	IdleTTL   time.Duration
	// WarmSpec is optional; empty disables cache warming.
	WarmSpec string
}

type Scheduler struct {
	cron     *cron.Cron
	sessions SessionSweeper
	notifier SessionNotifier
	jobs     JobsRefresher
	opts     Options
	logger   *log.Logger
}

func New(opts Options, sessions SessionSweeper, notifier SessionNotifier, jobs JobsRefresher, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		sessions: sessions,
		notifier: notifier,
		jobs:     jobs,
		opts:     opts,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop. ctx bounds every
// warm-up fetch.
func (s *Scheduler) Start(ctx context.Context) error {
	if spec := strings.TrimSpace(s.opts.SweepSpec); spec != "" && s.sessions != nil {
		if _, err := s.cron.AddFunc(spec, s.SweepNow); err != nil {
			return fmt.Errorf("cron.AddFunc sweep %q: %w", spec, err)
		}
		s.logger.Printf("[Scheduler] session sweep registered spec=%q idle=%s", spec, s.opts.IdleTTL)
	}

	if spec := strings.TrimSpace(s.opts.WarmSpec); spec != "" && s.jobs != nil {
		if _, err := s.cron.AddFunc(spec, func() { s.WarmNow(ctx) }); err != nil {
			return fmt.Errorf("cron.AddFunc warm %q: %w", spec, err)
		}
		s.logger.Printf("[Scheduler] cache warm registered spec=%q", spec)
	}

	s.cron.Start()
	s.logger.Printf("[Scheduler] Cron started")
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Printf("[Scheduler] Cron stopped")
}

func (s *Scheduler) SweepNow() {
	if s.sessions == nil {
		return
	}
	ids := s.sessions.Sweep(s.opts.IdleTTL)
	if s.notifier != nil {
		for _, id := range ids {
			s.notifier.CloseSession(id)
		}
	}
	if len(ids) > 0 {
		s.logger.Printf("[Scheduler] swept sessions=%d", len(ids))
	}
}

func (s *Scheduler) WarmNow(ctx context.Context) {
	if s.jobs == nil {
		return
	}
	jobs, err := s.jobs.RefreshJobs(ctx)
	if err != nil {
		s.logger.Printf("[Scheduler] cache warm error: %v", err)
		return
	}
	s.logger.Printf("[Scheduler] cache warmed jobs=%d", len(jobs))
}
