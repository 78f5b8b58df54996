package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
// Covered by postgres_integration_test.go behind the integration build tag.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// InsertSalesRecord inserts one historical sale into the ledger.
// Records are immutable once written; there is no update path.
func (s *PostgresStore) InsertSalesRecord(ctx context.Context, r *domain.SalesRecord) error {
	var saleDate any
	if !r.SaleDate.IsZero() {
		saleDate = r.SaleDate
	}

	args := pgx.NamedArgs{
		"source":         r.Source,
		"dealer_name":    r.Dealer,
		"make":           r.Make,
		"model":          r.Model,
		"year":           r.Year,
		"variant":        r.Variant,
		"variant_family": r.VariantFamily,
		"body":           r.Body,
		"transmission":   r.Transmission,
		"drivetrain":     r.Drivetrain,
		"engine":         r.Engine,
		"sale_date":      saleDate,
		"days_in_stock":  r.DaysInStock,
		"sell_price":     r.SellPrice,
		"total_cost":     r.TotalCost,
		"gross_profit":   r.GrossProfit,
	}

	return s.pool.QueryRow(ctx, queryInsertSalesRecord, args).Scan(&r.ID, &r.CreatedAt)
}

// GetSalesRecord retrieves a sales record by its UUID.
func (s *PostgresStore) GetSalesRecord(ctx context.Context, id string) (*domain.SalesRecord, error) {
	r := &domain.SalesRecord{}
	if err := scanRecord(s.pool.QueryRow(ctx, queryGetSalesRecord, id), r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListSalesRecords queries the ledger with optional filters, returning
// results and total count.
func (s *PostgresStore) ListSalesRecords(
	ctx context.Context,
	opts *RecordQuery,
) ([]domain.SalesRecord, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting records: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []domain.SalesRecord
	for rows.Next() {
		var r domain.SalesRecord
		if err := scanRecord(rows, &r); err != nil {
			return nil, 0, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating records: %w", err)
	}

	return records, total, nil
}

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, r *domain.SalesRecord) error {
	var saleDate time.Time
	err := row.Scan(
		&r.ID, &r.Source, &r.Dealer,
		&r.Make, &r.Model, &r.Year, &r.Variant, &r.VariantFamily,
		&r.Body, &r.Transmission, &r.Drivetrain, &r.Engine,
		&saleDate, &r.DaysInStock, &r.SellPrice, &r.TotalCost, &r.GrossProfit,
		&r.CreatedAt,
	)
	if err != nil {
		return err
	}

	// NULL sale_date is coalesced to epoch in SQL; map it back to zero so
	// the engine's missing-date handling sees it.
	if saleDate.Unix() != 0 {
		r.SaleDate = saleDate
	}
	return nil
}

// InsertPriceAudit persists one pricing decision.
func (s *PostgresStore) InsertPriceAudit(ctx context.Context, a *domain.PriceAudit) error {
	queryJSON, err := json.Marshal(a.Query)
	if err != nil {
		return fmt.Errorf("marshaling query: %w", err)
	}
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}

	args := pgx.NamedArgs{
		"query":   queryJSON,
		"result":  resultJSON,
		"verdict": string(a.Verdict),
		"n_comps": a.NComps,
	}

	return s.pool.QueryRow(ctx, queryInsertPriceAudit, args).Scan(&a.ID, &a.CreatedAt)
}

// GetPriceAudit retrieves a pricing audit by its UUID.
func (s *PostgresStore) GetPriceAudit(ctx context.Context, id string) (*domain.PriceAudit, error) {
	a := &domain.PriceAudit{}
	if err := scanAudit(s.pool.QueryRow(ctx, queryGetPriceAudit, id), a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListPriceAudits queries pricing audits newest-first.
func (s *PostgresStore) ListPriceAudits(
	ctx context.Context,
	opts *AuditQuery,
) ([]domain.PriceAudit, int, error) {
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audits: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying audits: %w", err)
	}
	defer rows.Close()

	var audits []domain.PriceAudit
	for rows.Next() {
		var a domain.PriceAudit
		if err := scanAudit(rows, &a); err != nil {
			return nil, 0, fmt.Errorf("scanning audit: %w", err)
		}
		audits = append(audits, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audits: %w", err)
	}

	return audits, total, nil
}

func scanAudit(row rowScanner, a *domain.PriceAudit) error {
	var queryJSON, resultJSON []byte
	var verdict string

	err := row.Scan(&a.ID, &queryJSON, &resultJSON, &verdict, &a.NComps, &a.CreatedAt)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(queryJSON, &a.Query); err != nil {
		return fmt.Errorf("unmarshaling query: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return fmt.Errorf("unmarshaling result: %w", err)
	}
	a.Verdict = domain.Verdict(verdict)
	return nil
}

// GetSystemState returns aggregate ledger and audit counts in one round trip.
func (s *PostgresStore) GetSystemState(ctx context.Context) (*domain.SystemState, error) {
	st := &domain.SystemState{}
	err := s.pool.QueryRow(ctx, querySystemState).Scan(
		&st.RecordsTotal,
		&st.RecordsMissingCost,
		&st.RecordsMissingDate,
		&st.AuditsTotal,
		&st.EscalationsTotal,
		&st.GrossMismatches,
	)
	if err != nil {
		return nil, fmt.Errorf("querying system state: %w", err)
	}
	return st, nil
}

// CountGrossMismatches counts ledger rows whose stored gross profit
// disagrees with sell_price - total_cost.
func (s *PostgresStore) CountGrossMismatches(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, queryCountGrossMismatches).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting gross mismatches: %w", err)
	}
	return n, nil
}

// InsertJobRun records the start of a scheduled job.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run finished with its status and row count.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns recent job runs, optionally filtered by name.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating job runs: %w", err)
	}

	return runs, nil
}
