package client

import (
	"context"
	"time"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// PriceResponse is the pricing endpoint response.
type PriceResponse struct {
	AuditID   string              `json:"audit_id"`
	Query     domain.QueryVehicle `json:"query"`
	Result    domain.PriceObject  `json:"result"`
	CreatedAt time.Time           `json:"created_at"`
}

// PriceVehicle prices one query vehicle against the ledger.
func (c *Client) PriceVehicle(
	ctx context.Context,
	q *domain.QueryVehicle,
) (*PriceResponse, error) {
	var resp PriceResponse
	if err := c.post(ctx, "/api/v1/price", q, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
