// Package domain defines the core business types for the OANCA pricing engine.
package domain

import (
	"time"
)

// Verdict is the final actionable recommendation emitted for a pricing request.
type Verdict string

// Verdict constants.
const (
	VerdictBuy      Verdict = "BUY"
	VerdictHitIt    Verdict = "HIT_IT"
	VerdictHardWork Verdict = "HARD_WORK"
	VerdictWalk     Verdict = "WALK"
	VerdictNeedPics Verdict = "NEED_PICS"
	VerdictEscalate Verdict = "ESCALATE"
)

// Priced reports whether the verdict carries a quotable buy range.
func (v Verdict) Priced() bool {
	switch v {
	case VerdictBuy, VerdictHitIt, VerdictHardWork, VerdictWalk:
		return true
	default:
		return false
	}
}

// DemandClass is a coarse bucket summarizing how quickly and profitably a
// vehicle type has historically sold.
type DemandClass string

// Demand class constants.
const (
	DemandFast     DemandClass = "fast"
	DemandAverage  DemandClass = "average"
	DemandHardWork DemandClass = "hard_work"
	DemandPoison   DemandClass = "poison"
)

// Confidence is the tier assigned to a priced verdict based on comp depth.
type Confidence string

// Confidence constants.
const (
	ConfidenceHigh Confidence = "HIGH"
	ConfidenceMed  Confidence = "MED"
	ConfidenceLow  Confidence = "LOW"
)

// Drivetrain is the normalized drivetrain bucket used for comp matching.
type Drivetrain string

// Drivetrain buckets.
const (
	Drivetrain2WD     Drivetrain = "2WD"
	Drivetrain4X4     Drivetrain = "4X4"
	DrivetrainUnknown Drivetrain = "UNKNOWN"
)

// SalesRecord is one historical sale from the dealer ledger. Records are
// created by ingestion and are read-only to the pricing engine. All monetary
// fields are whole AUD.
type SalesRecord struct {
	ID     string `json:"id"          db:"id"`
	Source string `json:"source"      db:"source"`
	Dealer string `json:"dealer_name" db:"dealer_name"`

	// Vehicle descriptor
	Make          string `json:"make"                     db:"make"`
	Model         string `json:"model"                    db:"model"`
	Year          int    `json:"year"                     db:"year"`
	Variant       string `json:"variant,omitempty"        db:"variant"`
	VariantFamily string `json:"variant_family,omitempty" db:"variant_family"`
	Body          string `json:"body,omitempty"           db:"body"`
	Transmission  string `json:"transmission,omitempty"   db:"transmission"`
	Drivetrain    string `json:"drivetrain,omitempty"     db:"drivetrain"`
	Engine        string `json:"engine,omitempty"         db:"engine"`

	// Transaction facts. TotalCost is the OWE figure, the sole pricing anchor.
	SaleDate    time.Time `json:"sale_date"     db:"sale_date"`
	DaysInStock int       `json:"days_in_stock" db:"days_in_stock"`
	SellPrice   int       `json:"sell_price"    db:"sell_price"`
	TotalCost   int       `json:"total_cost"    db:"total_cost"`
	GrossProfit int       `json:"gross_profit"  db:"gross_profit"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ComputedGross recomputes gross profit from sell price and total cost.
// The stored gross_profit column is not trusted by consumers.
func (r *SalesRecord) ComputedGross() int {
	return r.SellPrice - r.TotalCost
}

// QueryVehicle describes the vehicle being priced. It has no persistent
// identity; one exists per pricing call.
type QueryVehicle struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          int    `json:"year"`
	VariantFamily string `json:"variant_family,omitempty"`
	Kilometres    int    `json:"km,omitempty"`
	Transmission  string `json:"transmission,omitempty"`
	Engine        string `json:"engine,omitempty"`
	Location      string `json:"location,omitempty"`
}

// PriceObject is the sole output contract of the pricing engine. When
// AllowPrice is false the buy bounds are nil, demand class and confidence are
// empty, and the verdict is NEED_PICS or ESCALATE.
type PriceObject struct {
	AllowPrice bool    `json:"allow_price"`
	Verdict    Verdict `json:"verdict"`

	BuyLow  *int `json:"buy_low"`
	BuyHigh *int `json:"buy_high"`

	AnchorOwe    *int `json:"anchor_owe"`
	AnchorOweP75 *int `json:"anchor_owe_p75"`

	DemandClass DemandClass `json:"demand_class,omitempty"`
	Confidence  Confidence  `json:"confidence,omitempty"`
	NComps      int         `json:"n_comps"`

	// Notes is the ordered audit trail of every rule applied.
	Notes []string `json:"notes"`

	// Retail context is informational only. It is derived from sell prices
	// and must never feed the buy bounds.
	RetailContextLow  *int `json:"retail_context_low,omitempty"`
	RetailContextHigh *int `json:"retail_context_high,omitempty"`

	FloorApplied      bool   `json:"floor_applied"`
	CapApplied        bool   `json:"cap_applied"`
	EscalationReason  string `json:"escalation_reason,omitempty"`
	FirewallTriggered bool   `json:"firewall_triggered"`
}

// PriceAudit persists one pricing decision: the query, the full result
// object, and denormalized columns for filtering.
type PriceAudit struct {
	ID        string       `json:"id"         db:"id"`
	Query     QueryVehicle `json:"query"      db:"query"`
	Result    PriceObject  `json:"result"     db:"result"`
	Verdict   Verdict      `json:"verdict"    db:"verdict"`
	NComps    int          `json:"n_comps"    db:"n_comps"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// JobRun records a single execution of a scheduled job.
type JobRun struct {
	ID           string     `json:"id"                      db:"id"`
	JobName      string     `json:"job_name"                db:"job_name"`
	StartedAt    time.Time  `json:"started_at"              db:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                  db:"status"`
	ErrorText    string     `json:"error_text,omitempty"    db:"error_text"`
	RowsAffected *int       `json:"rows_affected,omitempty" db:"rows_affected"`
}

// SystemState holds a precomputed snapshot of aggregate ledger metrics.
type SystemState struct {
	RecordsTotal       int `json:"records_total"        db:"records_total"`
	RecordsMissingCost int `json:"records_missing_cost" db:"records_missing_cost"`
	RecordsMissingDate int `json:"records_missing_date" db:"records_missing_date"`
	AuditsTotal        int `json:"audits_total"         db:"audits_total"`
	EscalationsTotal   int `json:"escalations_total"    db:"escalations_total"`
	GrossMismatches    int `json:"gross_mismatches"     db:"gross_mismatches"`
}
