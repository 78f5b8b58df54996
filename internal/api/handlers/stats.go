package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mackayauctioneers-design/oanca/internal/store"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// StatsHandler handles system state and job run endpoints.
type StatsHandler struct {
	store store.Store
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(s store.Store) *StatsHandler {
	return &StatsHandler{store: s}
}

// --- Input/Output types ---

// GetStatsInput is the (empty) input for the system stats endpoint.
type GetStatsInput struct{}

// GetStatsOutput is the response for the system stats endpoint.
type GetStatsOutput struct {
	Body domain.SystemState
}

// ListJobRunsInput is the input for listing scheduled job runs.
type ListJobRunsInput struct {
	Job   string `query:"job"   doc:"Filter by job name"`
	Limit int    `query:"limit" doc:"Number of results (default 50)" minimum:"1" maximum:"1000"`
}

// ListJobRunsOutput is the response for listing scheduled job runs.
type ListJobRunsOutput struct {
	Body struct {
		Runs []domain.JobRun `json:"runs"`
	}
}

// --- Handlers ---

// GetStats returns aggregate ledger and audit counts.
func (h *StatsHandler) GetStats(
	ctx context.Context,
	_ *GetStatsInput,
) (*GetStatsOutput, error) {
	state, err := h.store.GetSystemState(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("stats query failed: " + err.Error())
	}

	return &GetStatsOutput{Body: *state}, nil
}

// ListJobRuns returns recent scheduled job runs, newest-first.
func (h *StatsHandler) ListJobRuns(
	ctx context.Context,
	input *ListJobRunsInput,
) (*ListJobRunsOutput, error) {
	runs, err := h.store.ListJobRuns(ctx, input.Job, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("job run query failed: " + err.Error())
	}

	resp := &ListJobRunsOutput{}
	resp.Body.Runs = runs

	return resp, nil
}

// RegisterStatsRoutes registers system state endpoints with the Huma API.
func RegisterStatsRoutes(api huma.API, h *StatsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats",
		Summary:     "System statistics",
		Description: "Returns aggregate ledger and audit counts.",
		Tags:        []string{"stats"},
	}, h.GetStats)

	huma.Register(api, huma.Operation{
		OperationID: "list-job-runs",
		Method:      http.MethodGet,
		Path:        "/api/v1/jobs",
		Summary:     "List job runs",
		Description: "Returns recent scheduled job executions.",
		Tags:        []string{"stats"},
	}, h.ListJobRuns)
}
