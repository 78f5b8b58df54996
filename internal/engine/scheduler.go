package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the engine's background jobs on fixed intervals.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	logger *slog.Logger
}

// NewScheduler creates a Scheduler with the ledger audit registered at the
// given interval.
func NewScheduler(
	e *Engine,
	logger *slog.Logger,
	ledgerAuditInterval time.Duration,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		engine: e,
		logger: logger,
	}

	spec := fmt.Sprintf("@every %s", ledgerAuditInterval)
	if _, err := s.cron.AddFunc(spec, s.runLedgerAudit); err != nil {
		return nil, fmt.Errorf("registering ledger audit job: %w", err)
	}

	return s, nil
}

// Start begins job execution in the background.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runLedgerAudit() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := s.engine.RunLedgerAudit(ctx); err != nil {
		s.logger.Error("ledger audit failed", "error", err)
	}
}
