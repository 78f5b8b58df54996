package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// AuditsResponse wraps a paginated pricing audit response.
type AuditsResponse struct {
	Audits []domain.PriceAudit `json:"audits"`
	Total  int                 `json:"total"`
}

// ListAuditsParams defines query parameters for audit queries.
type ListAuditsParams struct {
	Verdict string
	Limit   int
	Offset  int
}

// ListAudits returns pricing audits matching the given parameters.
func (c *Client) ListAudits(
	ctx context.Context,
	params *ListAuditsParams,
) (*AuditsResponse, error) {
	q := url.Values{}
	if params.Verdict != "" {
		q.Set("verdict", params.Verdict)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}

	path := "/api/v1/audits"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp AuditsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAudit returns a single pricing audit by ID.
func (c *Client) GetAudit(ctx context.Context, id string) (*domain.PriceAudit, error) {
	var a domain.PriceAudit
	if err := c.get(ctx, fmt.Sprintf("/api/v1/audits/%s", id), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Stats returns aggregate ledger and audit counts.
func (c *Client) Stats(ctx context.Context) (*domain.SystemState, error) {
	var st domain.SystemState
	if err := c.get(ctx, "/api/v1/stats", &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// JobRunsResponse wraps a job run listing.
type JobRunsResponse struct {
	Runs []domain.JobRun `json:"runs"`
}

// ListJobRuns returns recent scheduled job executions.
func (c *Client) ListJobRuns(ctx context.Context, job string, limit int) ([]domain.JobRun, error) {
	q := url.Values{}
	if job != "" {
		q.Set("job", job)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	path := "/api/v1/jobs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp JobRunsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp.Runs, nil
}
