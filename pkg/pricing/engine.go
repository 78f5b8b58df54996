package pricing

import (
	"fmt"
	"sort"
	"time"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// Run executes the full pricing pipeline for one query against an in-memory
// pool of historical sales: comparable selection, recency weighting,
// cost-basis statistics, demand classification, buy-range computation, and
// the verdict state machine with its escalation overrides.
//
// Run performs no I/O and holds no state between calls. For a fixed query,
// pool, and now it returns identical output, which is what makes re-pricing
// reproducible and the notes trail a usable audit record.
func Run(q domain.QueryVehicle, pool []domain.SalesRecord, now time.Time) domain.PriceObject {
	out := domain.PriceObject{
		Verdict: domain.VerdictNeedPics,
		Notes:   []string{},
	}

	comps := SelectComparables(q, pool)
	weighted := BuildWeightedComps(comps, now)

	usable := make([]WeightedComp, 0, len(weighted))
	for _, c := range weighted {
		if c.Record.TotalCost > 0 {
			usable = append(usable, c)
		}
	}
	out.NComps = len(usable)
	out.Notes = append(out.Notes, fmt.Sprintf(
		"matched %d of %d pool records; %d carry a usable cost basis",
		len(comps), len(pool), len(usable)))

	// Firewall check before any pricing work.
	if forced, reason := ShouldForceEscalation(q, len(usable)); forced {
		out.FirewallTriggered = true
		return escalate(out, reason)
	}

	if len(usable) < minPricedComps {
		out.Notes = append(out.Notes, fmt.Sprintf(
			"need at least %d comps with cost basis to quote, have %d: requesting photos",
			minPricedComps, len(usable)))
		return out
	}

	stats := ComputeOweStats(weighted)

	demand := ClassifyDemand(q, usable)
	out.Notes = append(out.Notes, fmt.Sprintf(
		"demand %s (%s; avg %.0f days, avg gross $%.0f)",
		demand.Class, demand.Reason, demand.AvgDays, demand.AvgGross))

	conf := ComputeConfidence(usable)

	br := ComputeBuyRange(stats, demand.Class, demand.AvgDays)
	out.Notes = append(out.Notes, br.Notes...)
	out.Notes = append(out.Notes, fmt.Sprintf(
		"anchor OWE $%d (weighted median of %d comps), P75 $%d",
		br.Anchor, stats.N, stats.P75))

	// Sanity clamp: a late-model heavy-duty truck priced under its floor
	// goes to a human instead.
	if floor, ok := HeavyDutyFloor(q); ok &&
		q.Year >= truckEscalationMinYear && br.High < floor {
		out.FloorApplied = true
		return escalate(out, fmt.Sprintf(
			"computed buy_high $%d is below the $%d heavy-duty floor", br.High, floor))
	}

	out.AllowPrice = true
	out.DemandClass = demand.Class
	out.Confidence = conf
	out.Verdict = VerdictFor(demand.Class, conf)
	out.BuyLow = intPtr(br.Low)
	out.BuyHigh = intPtr(br.High)
	out.AnchorOwe = intPtr(br.Anchor)
	out.AnchorOweP75 = intPtr(stats.P75)
	out.CapApplied = br.CapApplied

	attachRetailContext(&out, usable)

	out.Notes = append(out.Notes, fmt.Sprintf(
		"verdict %s at %s confidence: buy $%d-$%d", out.Verdict, conf, br.Low, br.High))

	return out
}

// escalate converts a partially built result into a terminal ESCALATE with
// no quotable price. The caller sets the flag naming which safety rule
// fired before handing the result over.
func escalate(out domain.PriceObject, reason string) domain.PriceObject {
	out.AllowPrice = false
	out.Verdict = domain.VerdictEscalate
	out.EscalationReason = reason
	out.BuyLow = nil
	out.BuyHigh = nil
	out.DemandClass = ""
	out.Confidence = ""
	out.Notes = append(out.Notes, "escalated: "+reason)
	return out
}

// attachRetailContext adds median/P75 of comp sell prices as informational
// context. Sell price never sets buy price; these fields exist only so
// operators can see the retail side of the market.
func attachRetailContext(out *domain.PriceObject, comps []WeightedComp) {
	var sells []int
	for _, c := range comps {
		if c.Record.SellPrice > 0 {
			sells = append(sells, c.Record.SellPrice)
		}
	}
	if len(sells) < minPricedComps {
		return
	}

	sort.Ints(sells)
	out.RetailContextLow = intPtr(sells[len(sells)/2])
	out.RetailContextHigh = intPtr(sells[len(sells)*3/4])
}

func intPtr(v int) *int {
	return &v
}
