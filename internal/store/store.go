// Package store defines the datastore abstraction for the OANCA service.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables fake-backed testing without a running
// database.
package store

import (
	"context"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// RecordQuery defines optional filters for sales ledger queries.
//
// Make and Model use the same either-direction containment rule as the
// pricing engine so a DB prefilter never excludes a record the engine would
// have matched.
type RecordQuery struct {
	Make    *string
	Model   *string
	Dealer  *string
	Source  *string
	YearMin *int
	YearMax *int
	Limit   int // default 50
	Offset  int
	OrderBy string // "sale_date", "total_cost", "created_at"
}

// AuditQuery defines optional filters for pricing audit queries.
type AuditQuery struct {
	Verdict *string
	Limit   int
	Offset  int
}

// Store defines all data access operations for the OANCA service.
type Store interface {
	// Sales ledger
	InsertSalesRecord(ctx context.Context, r *domain.SalesRecord) error
	GetSalesRecord(ctx context.Context, id string) (*domain.SalesRecord, error)
	ListSalesRecords(ctx context.Context, opts *RecordQuery) ([]domain.SalesRecord, int, error)

	// Pricing audits
	InsertPriceAudit(ctx context.Context, a *domain.PriceAudit) error
	GetPriceAudit(ctx context.Context, id string) (*domain.PriceAudit, error)
	ListPriceAudits(ctx context.Context, opts *AuditQuery) ([]domain.PriceAudit, int, error)

	// Aggregates
	GetSystemState(ctx context.Context) (*domain.SystemState, error)
	CountGrossMismatches(ctx context.Context) (int, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
