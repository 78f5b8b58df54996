// Package engine orchestrates pricing requests: it assembles the candidate
// pool from the store, runs the pure pricing pipeline, persists the audit,
// and dispatches escalations.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mackayauctioneers-design/oanca/internal/metrics"
	"github.com/mackayauctioneers-design/oanca/internal/notify"
	"github.com/mackayauctioneers-design/oanca/internal/store"
	"github.com/mackayauctioneers-design/oanca/pkg/pricing"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

const defaultPoolLimit = 2000

// Engine wires the store, the pricing pipeline, and the notifier together.
type Engine struct {
	store    store.Store
	notifier notify.Notifier
	logger   *slog.Logger
	tracer   trace.Tracer

	now       func() time.Time
	poolLimit int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithNow overrides the clock. Pricing is deterministic given a fixed clock,
// so tests pin this.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithPoolLimit caps how many ledger records one pricing request may load.
func WithPoolLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.poolLimit = n
		}
	}
}

// New creates an Engine.
func New(s store.Store, n notify.Notifier, opts ...Option) *Engine {
	e := &Engine{
		store:     s,
		notifier:  n,
		logger:    slog.Default(),
		tracer:    otel.Tracer("oanca/engine"),
		now:       time.Now,
		poolLimit: defaultPoolLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PriceVehicle prices one query vehicle against the ledger and persists the
// decision. The returned audit carries both the query and the full result.
func (e *Engine) PriceVehicle(
	ctx context.Context,
	q domain.QueryVehicle,
) (*domain.PriceAudit, error) {
	ctx, span := e.tracer.Start(ctx, "engine.PriceVehicle")
	defer span.End()

	start := e.now()

	pool, total, err := e.loadPool(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("loading candidate pool: %w", err)
	}
	if total > len(pool) {
		e.logger.Warn("candidate pool truncated",
			"make", q.Make, "model", q.Model,
			"loaded", len(pool), "total", total)
	}

	result := pricing.Run(q, pool, e.now())

	span.SetAttributes(
		attribute.String("pricing.verdict", string(result.Verdict)),
		attribute.Int("pricing.n_comps", result.NComps),
	)

	metrics.PricingRequestsTotal.WithLabelValues(string(result.Verdict)).Inc()
	metrics.PricingDuration.Observe(e.now().Sub(start).Seconds())
	metrics.PricingCompCount.Observe(float64(result.NComps))

	audit := &domain.PriceAudit{
		Query:   q,
		Result:  result,
		Verdict: result.Verdict,
		NComps:  result.NComps,
	}
	if err := e.store.InsertPriceAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("persisting price audit: %w", err)
	}

	e.logger.Info("priced vehicle",
		"audit_id", audit.ID,
		"make", q.Make, "model", q.Model, "year", q.Year,
		"verdict", result.Verdict,
		"n_comps", result.NComps,
		"allow_price", result.AllowPrice)

	if result.Verdict == domain.VerdictEscalate {
		metrics.PricingEscalationsTotal.Inc()
		e.sendEscalation(ctx, q, &result)
	}

	return audit, nil
}

// loadPool fetches candidate records filtered by make and model. The store
// filter is deliberately looser than the engine's matching so the prefilter
// never drops a record the engine would accept.
func (e *Engine) loadPool(
	ctx context.Context,
	q domain.QueryVehicle,
) ([]domain.SalesRecord, int, error) {
	opts := &store.RecordQuery{
		Limit:   e.poolLimit,
		OrderBy: "sale_date",
	}
	if q.Make != "" {
		opts.Make = &q.Make
	}
	if q.Model != "" {
		opts.Model = &q.Model
	}

	return e.store.ListSalesRecords(ctx, opts)
}

func (e *Engine) sendEscalation(
	ctx context.Context,
	q domain.QueryVehicle,
	result *domain.PriceObject,
) {
	esc := &notify.EscalationPayload{
		Vehicle:  fmt.Sprintf("%d %s %s %s", q.Year, q.Make, q.Model, q.VariantFamily),
		Location: q.Location,
		Reason:   result.EscalationReason,
		NComps:   result.NComps,
		Floor:    result.FloorApplied,
		Notes:    result.Notes,
	}

	if err := e.notifier.SendEscalation(ctx, esc); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		e.logger.Error("sending escalation notification", "error", err)
	}
}
