package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mackayauctioneers-design/oanca/internal/store"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

const maxIngestBatch = 500

// RecordsHandler handles sales ledger endpoints.
type RecordsHandler struct {
	store store.Store
}

// NewRecordsHandler creates a new RecordsHandler.
func NewRecordsHandler(s store.Store) *RecordsHandler {
	return &RecordsHandler{store: s}
}

// --- Input/Output types ---

// ListRecordsInput is the input for querying the sales ledger.
type ListRecordsInput struct {
	Make    string `query:"make"     doc:"Filter by make (containment match)"`
	Model   string `query:"model"    doc:"Filter by model (containment match)"`
	Dealer  string `query:"dealer"   doc:"Filter by dealer name"`
	Source  string `query:"source"   doc:"Filter by ingestion source"`
	YearMin int    `query:"year_min" doc:"Minimum model year"                  minimum:"0"`
	YearMax int    `query:"year_max" doc:"Maximum model year"                  minimum:"0"`
	Limit   int    `query:"limit"    doc:"Number of results (default 50)"      minimum:"1" maximum:"5000"`
	Offset  int    `query:"offset"   doc:"Pagination offset"                   minimum:"0"`
	OrderBy string `query:"order_by" doc:"Sort field"                          enum:"sale_date,total_cost,created_at,"`
}

// ListRecordsOutput is the response for querying the sales ledger.
type ListRecordsOutput struct {
	Body struct {
		Records []domain.SalesRecord `json:"records"`
		Total   int                  `json:"total"`
		Limit   int                  `json:"limit"`
		Offset  int                  `json:"offset"`
	}
}

// GetRecordInput is the input for fetching a single sales record.
type GetRecordInput struct {
	ID string `path:"id" doc:"Record UUID"`
}

// GetRecordOutput is the response for fetching a single sales record.
type GetRecordOutput struct {
	Body domain.SalesRecord
}

// IngestRecordInput is one sale in an ingest batch.
type IngestRecordInput struct {
	Source        string    `json:"source,omitempty"         doc:"Ingestion source"`
	Dealer        string    `json:"dealer_name,omitempty"    doc:"Selling dealer"`
	Make          string    `json:"make"                     doc:"Vehicle make"     minLength:"1"`
	Model         string    `json:"model"                    doc:"Vehicle model"    minLength:"1"`
	Year          int       `json:"year"                     doc:"Model year"       minimum:"1950" maximum:"2100"`
	Variant       string    `json:"variant,omitempty"        doc:"Trim badge"`
	VariantFamily string    `json:"variant_family,omitempty" doc:"Variant family text"`
	Body          string    `json:"body,omitempty"           doc:"Body style"`
	Transmission  string    `json:"transmission,omitempty"   doc:"Transmission description"`
	Drivetrain    string    `json:"drivetrain,omitempty"     doc:"Drivetrain description"`
	Engine        string    `json:"engine,omitempty"         doc:"Engine description"`
	SaleDate      time.Time `json:"sale_date,omitempty"      doc:"Date the sale settled"`
	DaysInStock   int       `json:"days_in_stock,omitempty"  doc:"Days held before sale" minimum:"0"`
	SellPrice     int       `json:"sell_price"               doc:"Sale price in AUD"     minimum:"0"`
	TotalCost     int       `json:"total_cost"               doc:"OWE cost basis in AUD" minimum:"0"`
	GrossProfit   int       `json:"gross_profit,omitempty"   doc:"Reported gross profit"`
}

// IngestRecordsInput is the request body for batch ingestion.
type IngestRecordsInput struct {
	Body struct {
		Records []IngestRecordInput `json:"records" minItems:"1" maxItems:"500"`
	}
}

// IngestRecordsOutput is the response for batch ingestion.
type IngestRecordsOutput struct {
	Body struct {
		Inserted int      `json:"inserted"`
		IDs      []string `json:"ids"`
	}
}

// --- Handlers ---

// ListRecords returns sales records matching the given filters.
func (h *RecordsHandler) ListRecords(
	ctx context.Context,
	input *ListRecordsInput,
) (*ListRecordsOutput, error) {
	q := &store.RecordQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Make != "" {
		q.Make = &input.Make
	}
	if input.Model != "" {
		q.Model = &input.Model
	}
	if input.Dealer != "" {
		q.Dealer = &input.Dealer
	}
	if input.Source != "" {
		q.Source = &input.Source
	}
	if input.YearMin != 0 {
		q.YearMin = &input.YearMin
	}
	if input.YearMax != 0 {
		q.YearMax = &input.YearMax
	}
	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	records, total, err := h.store.ListSalesRecords(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("record query failed: " + err.Error())
	}

	resp := &ListRecordsOutput{}
	resp.Body.Records = records
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetRecord returns a single sales record by ID.
func (h *RecordsHandler) GetRecord(
	ctx context.Context,
	input *GetRecordInput,
) (*GetRecordOutput, error) {
	record, err := h.store.GetSalesRecord(ctx, input.ID)
	if err != nil {
		return nil, huma.Error404NotFound("record not found")
	}

	return &GetRecordOutput{Body: *record}, nil
}

// IngestRecords inserts a batch of historical sales into the ledger.
// Insertion is not transactional across the batch; the response reports how
// many rows landed before any failure.
func (h *RecordsHandler) IngestRecords(
	ctx context.Context,
	input *IngestRecordsInput,
) (*IngestRecordsOutput, error) {
	if len(input.Body.Records) > maxIngestBatch {
		return nil, huma.Error422UnprocessableEntity(
			fmt.Sprintf("batch exceeds %d records", maxIngestBatch))
	}

	resp := &IngestRecordsOutput{}
	resp.Body.IDs = make([]string, 0, len(input.Body.Records))

	for i, in := range input.Body.Records {
		r := &domain.SalesRecord{
			Source:        in.Source,
			Dealer:        in.Dealer,
			Make:          in.Make,
			Model:         in.Model,
			Year:          in.Year,
			Variant:       in.Variant,
			VariantFamily: in.VariantFamily,
			Body:          in.Body,
			Transmission:  in.Transmission,
			Drivetrain:    in.Drivetrain,
			Engine:        in.Engine,
			SaleDate:      in.SaleDate,
			DaysInStock:   in.DaysInStock,
			SellPrice:     in.SellPrice,
			TotalCost:     in.TotalCost,
			GrossProfit:   in.GrossProfit,
		}

		if err := h.store.InsertSalesRecord(ctx, r); err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf(
				"inserting record %d of %d (after %d inserted): %v",
				i+1, len(input.Body.Records), resp.Body.Inserted, err))
		}

		resp.Body.Inserted++
		resp.Body.IDs = append(resp.Body.IDs, r.ID)
	}

	return resp, nil
}

// RegisterRecordRoutes registers sales ledger endpoints with the Huma API.
func RegisterRecordRoutes(api huma.API, h *RecordsHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-records",
		Method:      http.MethodGet,
		Path:        "/api/v1/records",
		Summary:     "List sales records",
		Description: "Returns sales ledger records with optional filters and pagination.",
		Tags:        []string{"records"},
	}, h.ListRecords)

	huma.Register(api, huma.Operation{
		OperationID: "get-record",
		Method:      http.MethodGet,
		Path:        "/api/v1/records/{id}",
		Summary:     "Get a sales record by ID",
		Description: "Returns a single sales record by its UUID.",
		Tags:        []string{"records"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetRecord)

	huma.Register(api, huma.Operation{
		OperationID: "ingest-records",
		Method:      http.MethodPost,
		Path:        "/api/v1/records",
		Summary:     "Ingest sales records",
		Description: "Inserts a batch of historical sales into the ledger.",
		Tags:        []string{"records"},
		Errors:      []int{http.StatusUnprocessableEntity},
	}, h.IngestRecords)
}
