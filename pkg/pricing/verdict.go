package pricing

import (
	"fmt"
	"strings"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// minPricedComps is the comp floor below which no price is ever quoted.
const minPricedComps = 2

// recentMonths bounds the "recent comp" window used for confidence tiers.
const recentMonths = 12

// ComputeConfidence tiers the comp set: HIGH needs five comps with three of
// them recent, MED needs three comps or two recent ones, everything else is
// LOW.
func ComputeConfidence(comps []WeightedComp) domain.Confidence {
	recent := 0
	for _, c := range comps {
		if c.Months <= recentMonths {
			recent++
		}
	}

	switch {
	case len(comps) >= 5 && recent >= 3:
		return domain.ConfidenceHigh
	case len(comps) >= 3 || recent >= 2:
		return domain.ConfidenceMed
	default:
		return domain.ConfidenceLow
	}
}

// VerdictFor maps demand class and confidence to the final verdict. Poison
// always walks and hard_work always negotiates; fast and average promote to
// BUY only when confidence supports it.
func VerdictFor(class domain.DemandClass, conf domain.Confidence) domain.Verdict {
	switch class {
	case domain.DemandPoison:
		return domain.VerdictWalk
	case domain.DemandHardWork:
		return domain.VerdictHitIt
	case domain.DemandFast:
		if conf == domain.ConfidenceHigh {
			return domain.VerdictBuy
		}
		return domain.VerdictHardWork
	case domain.DemandAverage:
		if conf == domain.ConfidenceLow {
			return domain.VerdictHardWork
		}
		return domain.VerdictBuy
	default:
		return domain.VerdictNeedPics
	}
}

// matchTruckRule finds the high-value truck rule covering the query, if any.
func matchTruckRule(q domain.QueryVehicle) (truckRule, bool) {
	model := normalize(q.Model + " " + q.VariantFamily)
	for _, rule := range highValueTrucks {
		if !matchText(q.Make, rule.Make) {
			continue
		}
		all := true
		for _, kw := range rule.Keywords {
			if !strings.Contains(model, kw) {
				all = false
				break
			}
		}
		if all {
			return rule, true
		}
	}
	return truckRule{}, false
}

// ShouldForceEscalation fires for late-model high-value American trucks with
// thin comp coverage. These carry too much money to price from two data
// points; a human looks instead.
func ShouldForceEscalation(q domain.QueryVehicle, nComps int) (bool, string) {
	_, ok := matchTruckRule(q)
	if !ok {
		return false, ""
	}
	if q.Year < truckEscalationMinYear || nComps >= truckEscalationMinComps {
		return false, ""
	}
	return true, fmt.Sprintf(
		"high-value truck firewall: %d %s %s with only %d usable comps",
		q.Year, q.Make, q.Model, nComps)
}

// HeavyDutyFloor returns the AUD sanity floor for heavy-duty truck variants.
// A computed buy_high below this figure for a late-model unit means the comp
// set is lying; the price is discarded rather than emitted.
func HeavyDutyFloor(q domain.QueryVehicle) (int, bool) {
	rule, ok := matchTruckRule(q)
	if !ok || !rule.HeavyDuty {
		return 0, false
	}
	return rule.FloorAUD, true
}
