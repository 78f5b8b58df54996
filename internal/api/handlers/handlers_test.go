package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mackayauctioneers-design/oanca/internal/store"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// fakeStore is an in-memory Store for handler tests.
type fakeStore struct {
	records []domain.SalesRecord
	audits  []domain.PriceAudit
	state   domain.SystemState
	runs    []domain.JobRun

	lastRecordQuery *store.RecordQuery
	lastAuditQuery  *store.AuditQuery
	lastJobName     string
	lastJobLimit    int

	insertErr error
	listErr   error
	pingErr   error
}

func (f *fakeStore) InsertSalesRecord(_ context.Context, r *domain.SalesRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	r.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	f.records = append(f.records, *r)
	return nil
}

func (f *fakeStore) GetSalesRecord(_ context.Context, id string) (*domain.SalesRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			return &f.records[i], nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeStore) ListSalesRecords(
	_ context.Context,
	opts *store.RecordQuery,
) ([]domain.SalesRecord, int, error) {
	f.lastRecordQuery = opts
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.records, len(f.records), nil
}

func (f *fakeStore) InsertPriceAudit(_ context.Context, a *domain.PriceAudit) error {
	f.audits = append(f.audits, *a)
	return nil
}

func (f *fakeStore) GetPriceAudit(_ context.Context, id string) (*domain.PriceAudit, error) {
	for i := range f.audits {
		if f.audits[i].ID == id {
			return &f.audits[i], nil
		}
	}
	return nil, errors.New("no rows")
}

func (f *fakeStore) ListPriceAudits(
	_ context.Context,
	opts *store.AuditQuery,
) ([]domain.PriceAudit, int, error) {
	f.lastAuditQuery = opts
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.audits, len(f.audits), nil
}

func (f *fakeStore) GetSystemState(context.Context) (*domain.SystemState, error) {
	return &f.state, nil
}

func (f *fakeStore) CountGrossMismatches(context.Context) (int, error) { return 0, nil }

func (f *fakeStore) InsertJobRun(context.Context, string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStore) CompleteJobRun(context.Context, string, string, string, int) error {
	return errors.New("not implemented")
}

func (f *fakeStore) ListJobRuns(
	_ context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	f.lastJobName = jobName
	f.lastJobLimit = limit
	return f.runs, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Ping(context.Context) error    { return f.pingErr }

// fakePricer returns a canned audit.
type fakePricer struct {
	audit *domain.PriceAudit
	err   error
	gotQ  domain.QueryVehicle
}

func (f *fakePricer) PriceVehicle(
	_ context.Context,
	q domain.QueryVehicle,
) (*domain.PriceAudit, error) {
	f.gotQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.audit, nil
}

func decodeBody(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}

func TestPriceVehicleEndpoint(t *testing.T) {
	t.Parallel()

	low, high := 11000, 12000
	pricer := &fakePricer{audit: &domain.PriceAudit{
		ID: "audit-1",
		Query: domain.QueryVehicle{
			Make: "Toyota", Model: "Hilux", Year: 2021, VariantFamily: "SR5",
		},
		Result: domain.PriceObject{
			AllowPrice:  true,
			Verdict:     domain.VerdictBuy,
			BuyLow:      &low,
			BuyHigh:     &high,
			DemandClass: domain.DemandFast,
			Confidence:  domain.ConfidenceHigh,
			NComps:      5,
		},
		Verdict:   domain.VerdictBuy,
		NComps:    5,
		CreatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}}

	_, api := humatest.New(t)
	RegisterPriceRoutes(api, NewPriceHandler(pricer))

	resp := api.Post("/api/v1/price", map[string]any{
		"make":           "Toyota",
		"model":          "Hilux",
		"year":           2021,
		"variant_family": "SR5",
		"km":             85000,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, "Toyota", pricer.gotQ.Make)
	assert.Equal(t, 2021, pricer.gotQ.Year)
	assert.Equal(t, 85000, pricer.gotQ.Kilometres)

	var out struct {
		AuditID string             `json:"audit_id"`
		Result  domain.PriceObject `json:"result"`
	}
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, "audit-1", out.AuditID)
	assert.Equal(t, domain.VerdictBuy, out.Result.Verdict)
	require.NotNil(t, out.Result.BuyLow)
	assert.Equal(t, 11000, *out.Result.BuyLow)
}

func TestPriceVehicleEndpoint_ValidationRejectsMissingMake(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	RegisterPriceRoutes(api, NewPriceHandler(&fakePricer{}))

	resp := api.Post("/api/v1/price", map[string]any{
		"model": "Hilux",
		"year":  2021,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestPriceVehicleEndpoint_EngineFailure(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	RegisterPriceRoutes(api, NewPriceHandler(&fakePricer{err: errors.New("db down")}))

	resp := api.Post("/api/v1/price", map[string]any{
		"make":  "Toyota",
		"model": "Hilux",
		"year":  2021,
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "pricing failed")
}

func TestListRecordsEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{records: []domain.SalesRecord{
		{ID: "rec-1", Make: "Toyota", Model: "Hilux", Year: 2021, SellPrice: 52000},
	}}
	_, api := humatest.New(t)
	RegisterRecordRoutes(api, NewRecordsHandler(fs))

	resp := api.Get("/api/v1/records?make=Toyota&year_min=2019&limit=10")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	require.NotNil(t, fs.lastRecordQuery)
	require.NotNil(t, fs.lastRecordQuery.Make)
	assert.Equal(t, "Toyota", *fs.lastRecordQuery.Make)
	require.NotNil(t, fs.lastRecordQuery.YearMin)
	assert.Equal(t, 2019, *fs.lastRecordQuery.YearMin)
	assert.Equal(t, 10, fs.lastRecordQuery.Limit)

	var out struct {
		Records []domain.SalesRecord `json:"records"`
		Total   int                  `json:"total"`
	}
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "Hilux", out.Records[0].Model)
}

func TestGetRecordEndpoint_NotFound(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	RegisterRecordRoutes(api, NewRecordsHandler(&fakeStore{}))

	resp := api.Get("/api/v1/records/does-not-exist")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestIngestRecordsEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{}
	_, api := humatest.New(t)
	RegisterRecordRoutes(api, NewRecordsHandler(fs))

	resp := api.Post("/api/v1/records", map[string]any{
		"records": []map[string]any{
			{
				"make": "Toyota", "model": "Hilux", "year": 2021,
				"sell_price": 52000, "total_cost": 48000,
				"sale_date": "2025-03-01T00:00:00Z", "days_in_stock": 14,
			},
			{
				"make": "Mazda", "model": "BT-50", "year": 2020,
				"sell_price": 41000, "total_cost": 39000,
			},
		},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var out struct {
		Inserted int      `json:"inserted"`
		IDs      []string `json:"ids"`
	}
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, 2, out.Inserted)
	assert.Equal(t, []string{"rec-1", "rec-2"}, out.IDs)
	require.Len(t, fs.records, 2)
	assert.Equal(t, "BT-50", fs.records[1].Model)
}

func TestIngestRecordsEndpoint_EmptyBatchRejected(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	RegisterRecordRoutes(api, NewRecordsHandler(&fakeStore{}))

	resp := api.Post("/api/v1/records", map[string]any{
		"records": []map[string]any{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestIngestRecordsEndpoint_InsertFailureReportsProgress(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{insertErr: errors.New("constraint violation")}
	_, api := humatest.New(t)
	RegisterRecordRoutes(api, NewRecordsHandler(fs))

	resp := api.Post("/api/v1/records", map[string]any{
		"records": []map[string]any{
			{"make": "Toyota", "model": "Hilux", "year": 2021, "sell_price": 1, "total_cost": 1},
		},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "inserting record 1 of 1")
}

func TestListAuditsEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{audits: []domain.PriceAudit{
		{ID: "audit-1", Verdict: domain.VerdictEscalate, NComps: 2},
	}}
	_, api := humatest.New(t)
	RegisterAuditRoutes(api, NewAuditsHandler(fs))

	resp := api.Get("/api/v1/audits?verdict=ESCALATE")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	require.NotNil(t, fs.lastAuditQuery)
	require.NotNil(t, fs.lastAuditQuery.Verdict)
	assert.Equal(t, "ESCALATE", *fs.lastAuditQuery.Verdict)

	var out struct {
		Audits []domain.PriceAudit `json:"audits"`
		Total  int                 `json:"total"`
	}
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, 1, out.Total)
}

func TestListAuditsEndpoint_RejectsUnknownVerdict(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	RegisterAuditRoutes(api, NewAuditsHandler(&fakeStore{}))

	resp := api.Get("/api/v1/audits?verdict=MAYBE")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestGetAuditEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{audits: []domain.PriceAudit{
		{ID: "audit-7", Verdict: domain.VerdictBuy, NComps: 5},
	}}
	_, api := humatest.New(t)
	RegisterAuditRoutes(api, NewAuditsHandler(fs))

	resp := api.Get("/api/v1/audits/audit-7")
	require.Equal(t, http.StatusOK, resp.Code)

	var out domain.PriceAudit
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, "audit-7", out.ID)

	notFound := api.Get("/api/v1/audits/audit-8")
	assert.Equal(t, http.StatusNotFound, notFound.Code)
}

func TestGetStatsEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{state: domain.SystemState{RecordsTotal: 350, AuditsTotal: 12}}
	_, api := humatest.New(t)
	RegisterStatsRoutes(api, NewStatsHandler(fs))

	resp := api.Get("/api/v1/stats")
	require.Equal(t, http.StatusOK, resp.Code)

	var out domain.SystemState
	decodeBody(t, resp.Body.Bytes(), &out)
	assert.Equal(t, 350, out.RecordsTotal)
	assert.Equal(t, 12, out.AuditsTotal)
}

func TestListJobRunsEndpoint(t *testing.T) {
	t.Parallel()

	fs := &fakeStore{runs: []domain.JobRun{{ID: "job-1", JobName: "ledger_audit"}}}
	_, api := humatest.New(t)
	RegisterStatsRoutes(api, NewStatsHandler(fs))

	resp := api.Get("/api/v1/jobs?job=ledger_audit&limit=5")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "ledger_audit", fs.lastJobName)
	assert.Equal(t, 5, fs.lastJobLimit)

	var out struct {
		Runs []domain.JobRun `json:"runs"`
	}
	decodeBody(t, resp.Body.Bytes(), &out)
	require.Len(t, out.Runs, 1)
}
