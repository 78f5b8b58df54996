package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	apiclient "github.com/mackayauctioneers-design/oanca/internal/api/client"
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printPriceDetail(resp *apiclient.PriceResponse) error {
	tw := newTabWriter(os.Stdout)
	r := &resp.Result

	tw.writef("Vehicle:\t%d %s %s %s\n",
		resp.Query.Year, resp.Query.Make, resp.Query.Model, resp.Query.VariantFamily)
	tw.writef("Verdict:\t%s\n", r.Verdict)

	if r.AllowPrice {
		tw.writef("Buy Range:\t$%d - $%d\n", *r.BuyLow, *r.BuyHigh)
		tw.writef("Anchor OWE:\t$%d (P75 $%d)\n", *r.AnchorOwe, *r.AnchorOweP75)
		tw.writef("Demand:\t%s\n", r.DemandClass)
		tw.writef("Confidence:\t%s\n", r.Confidence)
	} else if r.EscalationReason != "" {
		tw.writef("Escalation:\t%s\n", r.EscalationReason)
	}

	tw.writef("Comps:\t%d\n", r.NComps)

	if r.RetailContextLow != nil && r.RetailContextHigh != nil {
		tw.writef("Retail Context:\t$%d - $%d (informational)\n",
			*r.RetailContextLow, *r.RetailContextHigh)
	}

	tw.writef("Audit:\t%s\n", resp.AuditID)
	tw.writef("\nNotes:\n")
	for _, note := range r.Notes {
		tw.writef("  - %s\n", note)
	}

	return tw.finish()
}

func printRecordsTable(records []domain.SalesRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tYEAR\tMAKE\tMODEL\tVARIANT\tSOLD\tDAYS\tSELL\tOWE\n")
	for i := range records {
		r := &records[i]
		sold := "-"
		if !r.SaleDate.IsZero() {
			sold = r.SaleDate.Format("2006-01-02")
		}
		tw.writef("%s\t%d\t%s\t%s\t%s\t%s\t%d\t$%d\t$%d\n",
			r.ID,
			r.Year,
			r.Make,
			r.Model,
			truncate(r.Variant, 24),
			sold,
			r.DaysInStock,
			r.SellPrice,
			r.TotalCost,
		)
	}
	return tw.finish()
}

func printRecordDetail(r *domain.SalesRecord) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", r.ID)
	tw.writef("Vehicle:\t%d %s %s %s\n", r.Year, r.Make, r.Model, r.Variant)
	if r.VariantFamily != "" {
		tw.writef("Family:\t%s\n", r.VariantFamily)
	}
	if r.Drivetrain != "" {
		tw.writef("Drivetrain:\t%s\n", r.Drivetrain)
	}
	if !r.SaleDate.IsZero() {
		tw.writef("Sold:\t%s\n", r.SaleDate.Format("2006-01-02"))
	}
	tw.writef("Days In Stock:\t%d\n", r.DaysInStock)
	tw.writef("Sell Price:\t$%d\n", r.SellPrice)
	tw.writef("Total Cost:\t$%d\n", r.TotalCost)
	tw.writef("Gross:\t$%d (stored $%d)\n", r.ComputedGross(), r.GrossProfit)
	tw.writef("Dealer:\t%s\n", r.Dealer)
	tw.writef("Source:\t%s\n", r.Source)
	return tw.finish()
}

func printAuditsTable(audits []domain.PriceAudit) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID\tVEHICLE\tVERDICT\tCOMPS\tBUY RANGE\tWHEN\n")
	for i := range audits {
		a := &audits[i]
		buyRange := "-"
		if a.Result.BuyLow != nil && a.Result.BuyHigh != nil {
			buyRange = fmt.Sprintf("$%d-$%d", *a.Result.BuyLow, *a.Result.BuyHigh)
		}
		vehicle := fmt.Sprintf("%d %s %s", a.Query.Year, a.Query.Make, a.Query.Model)
		tw.writef("%s\t%s\t%s\t%d\t%s\t%s\n",
			a.ID,
			truncate(vehicle, 32),
			a.Verdict,
			a.NComps,
			buyRange,
			a.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	return tw.finish()
}

func printAuditDetail(a *domain.PriceAudit) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("ID:\t%s\n", a.ID)
	tw.writef("Vehicle:\t%d %s %s %s\n",
		a.Query.Year, a.Query.Make, a.Query.Model, a.Query.VariantFamily)
	tw.writef("Verdict:\t%s\n", a.Verdict)
	if a.Result.BuyLow != nil && a.Result.BuyHigh != nil {
		tw.writef("Buy Range:\t$%d - $%d\n", *a.Result.BuyLow, *a.Result.BuyHigh)
	}
	tw.writef("Comps:\t%d\n", a.NComps)
	tw.writef("When:\t%s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	tw.writef("\nNotes:\n")
	for _, note := range a.Result.Notes {
		tw.writef("  - %s\n", note)
	}
	return tw.finish()
}

func printStatsDetail(st *domain.SystemState) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("Ledger Records:\t%d\n", st.RecordsTotal)
	tw.writef("  Missing Cost:\t%d\n", st.RecordsMissingCost)
	tw.writef("  Missing Date:\t%d\n", st.RecordsMissingDate)
	tw.writef("Pricing Audits:\t%d\n", st.AuditsTotal)
	tw.writef("  Escalations:\t%d\n", st.EscalationsTotal)
	tw.writef("Gross Mismatches:\t%d\n", st.GrossMismatches)
	return tw.finish()
}

func printJobRunsTable(runs []domain.JobRun) error {
	tw := newTabWriter(os.Stdout)
	tw.writef("JOB\tSTATUS\tSTARTED\tCOMPLETED\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Format("2006-01-02 15:04:05")
		}
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			r.JobName,
			r.Status,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			completed,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
