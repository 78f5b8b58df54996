package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// Pricer is the slice of the engine the price endpoint needs.
type Pricer interface {
	PriceVehicle(ctx context.Context, q domain.QueryVehicle) (*domain.PriceAudit, error)
}

// PriceHandler handles pricing requests.
type PriceHandler struct {
	pricer Pricer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(p Pricer) *PriceHandler {
	return &PriceHandler{pricer: p}
}

// --- Input/Output types ---

// PriceVehicleInput is the request body for pricing one vehicle.
type PriceVehicleInput struct {
	Body struct {
		Make          string `json:"make"                     doc:"Vehicle make"              minLength:"1"`
		Model         string `json:"model"                    doc:"Vehicle model"             minLength:"1"`
		Year          int    `json:"year"                     doc:"Model year"                minimum:"1950" maximum:"2100"`
		VariantFamily string `json:"variant_family,omitempty" doc:"Variant or badge text"`
		Kilometres    int    `json:"km,omitempty"             doc:"Odometer reading"          minimum:"0"`
		Transmission  string `json:"transmission,omitempty"   doc:"Transmission description"`
		Engine        string `json:"engine,omitempty"         doc:"Engine description"`
		Location      string `json:"location,omitempty"       doc:"Where the vehicle is"`
	}
}

// PriceVehicleOutput is the pricing response: the full decision plus the
// audit identifier it was stored under.
type PriceVehicleOutput struct {
	Body struct {
		AuditID   string             `json:"audit_id"`
		Query     domain.QueryVehicle `json:"query"`
		Result    domain.PriceObject  `json:"result"`
		CreatedAt time.Time           `json:"created_at"`
	}
}

// --- Handlers ---

// PriceVehicle runs the pricing pipeline for one query vehicle and returns
// the persisted decision.
func (h *PriceHandler) PriceVehicle(
	ctx context.Context,
	input *PriceVehicleInput,
) (*PriceVehicleOutput, error) {
	q := domain.QueryVehicle{
		Make:          input.Body.Make,
		Model:         input.Body.Model,
		Year:          input.Body.Year,
		VariantFamily: input.Body.VariantFamily,
		Kilometres:    input.Body.Kilometres,
		Transmission:  input.Body.Transmission,
		Engine:        input.Body.Engine,
		Location:      input.Body.Location,
	}

	audit, err := h.pricer.PriceVehicle(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("pricing failed: " + err.Error())
	}

	resp := &PriceVehicleOutput{}
	resp.Body.AuditID = audit.ID
	resp.Body.Query = audit.Query
	resp.Body.Result = audit.Result
	resp.Body.CreatedAt = audit.CreatedAt

	return resp, nil
}

// RegisterPriceRoutes registers pricing endpoints with the Huma API.
func RegisterPriceRoutes(api huma.API, h *PriceHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "price-vehicle",
		Method:      http.MethodPost,
		Path:        "/api/v1/price",
		Summary:     "Price a vehicle",
		Description: "Runs the pricing pipeline against the sales ledger and returns a verdict with buy bounds.",
		Tags:        []string{"pricing"},
	}, h.PriceVehicle)
}
