package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/mackayauctioneers-design/oanca/internal/metrics"
)

const ledgerAuditJobName = "ledger_audit"

// RunLedgerAudit sweeps the sales ledger for integrity problems and refreshes
// the ledger gauges. Each run is recorded in job_runs so operators can see
// when the last sweep happened and whether it succeeded.
func (e *Engine) RunLedgerAudit(ctx context.Context) error {
	start := time.Now()

	runID, err := e.store.InsertJobRun(ctx, ledgerAuditJobName)
	if err != nil {
		return fmt.Errorf("recording job start: %w", err)
	}

	state, err := e.store.GetSystemState(ctx)
	if err != nil {
		e.completeJob(ctx, runID, "failed", err.Error(), 0)
		return fmt.Errorf("querying system state: %w", err)
	}

	mismatches, err := e.store.CountGrossMismatches(ctx)
	if err != nil {
		e.completeJob(ctx, runID, "failed", err.Error(), 0)
		return fmt.Errorf("counting gross mismatches: %w", err)
	}

	metrics.LedgerRecordsTotal.Set(float64(state.RecordsTotal))
	metrics.LedgerGrossMismatches.Set(float64(mismatches))
	metrics.LedgerAuditDuration.Observe(time.Since(start).Seconds())

	e.completeJob(ctx, runID, "succeeded", "", state.RecordsTotal)

	logFn := e.logger.Info
	if mismatches > 0 {
		logFn = e.logger.Warn
	}
	logFn("ledger audit complete",
		"records_total", state.RecordsTotal,
		"records_missing_cost", state.RecordsMissingCost,
		"records_missing_date", state.RecordsMissingDate,
		"gross_mismatches", mismatches,
		"duration", time.Since(start))

	return nil
}

func (e *Engine) completeJob(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rows int,
) {
	if err := e.store.CompleteJobRun(ctx, id, status, errText, rows); err != nil {
		e.logger.Error("completing job run", "job_run_id", id, "error", err)
	}
}
