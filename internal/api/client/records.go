package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// RecordsResponse wraps a paginated sales record response.
type RecordsResponse struct {
	Records []domain.SalesRecord `json:"records"`
	Total   int                  `json:"total"`
}

// ListRecordsParams defines query parameters for ledger queries.
type ListRecordsParams struct {
	Make    string
	Model   string
	Dealer  string
	Source  string
	YearMin int
	YearMax int
	Limit   int
	Offset  int
	OrderBy string
}

// ListRecords returns sales records matching the given parameters.
func (c *Client) ListRecords(
	ctx context.Context,
	params *ListRecordsParams,
) (*RecordsResponse, error) {
	q := url.Values{}
	if params.Make != "" {
		q.Set("make", params.Make)
	}
	if params.Model != "" {
		q.Set("model", params.Model)
	}
	if params.Dealer != "" {
		q.Set("dealer", params.Dealer)
	}
	if params.Source != "" {
		q.Set("source", params.Source)
	}
	if params.YearMin > 0 {
		q.Set("year_min", strconv.Itoa(params.YearMin))
	}
	if params.YearMax > 0 {
		q.Set("year_max", strconv.Itoa(params.YearMax))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.OrderBy != "" {
		q.Set("order_by", params.OrderBy)
	}

	path := "/api/v1/records"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp RecordsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRecord returns a single sales record by ID.
func (c *Client) GetRecord(ctx context.Context, id string) (*domain.SalesRecord, error) {
	var r domain.SalesRecord
	if err := c.get(ctx, fmt.Sprintf("/api/v1/records/%s", id), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// IngestResponse is the batch ingestion response.
type IngestResponse struct {
	Inserted int      `json:"inserted"`
	IDs      []string `json:"ids"`
}

// IngestRecords inserts a batch of historical sales into the ledger.
func (c *Client) IngestRecords(
	ctx context.Context,
	records []domain.SalesRecord,
) (*IngestResponse, error) {
	body := struct {
		Records []domain.SalesRecord `json:"records"`
	}{Records: records}

	var resp IngestResponse
	if err := c.post(ctx, "/api/v1/records", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
