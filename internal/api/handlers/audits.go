package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mackayauctioneers-design/oanca/internal/store"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// AuditsHandler handles pricing audit query endpoints.
type AuditsHandler struct {
	store store.Store
}

// NewAuditsHandler creates a new AuditsHandler.
func NewAuditsHandler(s store.Store) *AuditsHandler {
	return &AuditsHandler{store: s}
}

// --- Input/Output types ---

// ListAuditsInput is the input for querying pricing audits.
type ListAuditsInput struct {
	Verdict string `query:"verdict" doc:"Filter by final verdict"          enum:"BUY,HIT_IT,HARD_WORK,WALK,NEED_PICS,ESCALATE,"`
	Limit   int    `query:"limit"   doc:"Number of results (default 50)"   minimum:"1" maximum:"5000"`
	Offset  int    `query:"offset"  doc:"Pagination offset"                minimum:"0"`
}

// ListAuditsOutput is the response for querying pricing audits.
type ListAuditsOutput struct {
	Body struct {
		Audits []domain.PriceAudit `json:"audits"`
		Total  int                 `json:"total"`
		Limit  int                 `json:"limit"`
		Offset int                 `json:"offset"`
	}
}

// GetAuditInput is the input for fetching a single pricing audit.
type GetAuditInput struct {
	ID string `path:"id" doc:"Audit UUID"`
}

// GetAuditOutput is the response for fetching a single pricing audit.
type GetAuditOutput struct {
	Body domain.PriceAudit
}

// --- Handlers ---

// ListAudits returns pricing audits newest-first with optional verdict filter.
func (h *AuditsHandler) ListAudits(
	ctx context.Context,
	input *ListAuditsInput,
) (*ListAuditsOutput, error) {
	q := &store.AuditQuery{
		Offset: input.Offset,
	}
	if input.Verdict != "" {
		q.Verdict = &input.Verdict
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	audits, total, err := h.store.ListPriceAudits(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("audit query failed: " + err.Error())
	}

	resp := &ListAuditsOutput{}
	resp.Body.Audits = audits
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetAudit returns a single pricing audit by ID.
func (h *AuditsHandler) GetAudit(
	ctx context.Context,
	input *GetAuditInput,
) (*GetAuditOutput, error) {
	audit, err := h.store.GetPriceAudit(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("audit not found")
	}

	return &GetAuditOutput{Body: *audit}, nil
}

// RegisterAuditRoutes registers pricing audit endpoints with the Huma API.
func RegisterAuditRoutes(api huma.API, h *AuditsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-audits",
		Method:      http.MethodGet,
		Path:        "/api/v1/audits",
		Summary:     "List pricing audits",
		Description: "Returns pricing audits newest-first with optional verdict filter.",
		Tags:        []string{"audits"},
	}, h.ListAudits)

	huma.Register(api, huma.Operation{
		OperationID: "get-audit",
		Method:      http.MethodGet,
		Path:        "/api/v1/audits/{id}",
		Summary:     "Get a pricing audit by ID",
		Description: "Returns a single pricing audit by its UUID.",
		Tags:        []string{"audits"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetAudit)
}
