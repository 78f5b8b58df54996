package pricing

import (
	"fmt"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// DemandResult is the outcome of demand classification.
type DemandResult struct {
	Class      domain.DemandClass
	Reason     string
	AvgDays    float64
	AvgGross   float64
	Overridden bool
}

// Defaults applied when a comp set carries no usable signal.
const (
	defaultAvgDays = 45.0
	lossRatioLimit = 0.5
)

// demandRule is one (predicate, result) pair in the classification chain.
// The chain is evaluated in order and stops at the first match, which makes
// rule precedence an explicit, auditable artifact.
type demandRule struct {
	Match  func(avgDays, avgGross, lossRatio float64) bool
	Class  domain.DemandClass
	Reason string
}

var demandRules = []demandRule{
	{
		Match: func(_, avgGross, lossRatio float64) bool {
			return lossRatio >= lossRatioLimit || avgGross < -500
		},
		Class:  domain.DemandPoison,
		Reason: "half or more of comps sold at a loss",
	},
	{
		Match: func(avgDays, avgGross, _ float64) bool {
			return avgDays <= 21 && avgGross >= 2000
		},
		Class:  domain.DemandFast,
		Reason: "sells inside three weeks at strong gross",
	},
	{
		Match: func(avgDays, avgGross, _ float64) bool {
			return avgDays <= 35 && avgGross >= 1000
		},
		Class:  domain.DemandAverage,
		Reason: "steady turner at acceptable gross",
	},
	{
		Match: func(avgDays, avgGross, _ float64) bool {
			return avgDays > 45 || avgGross < 1500
		},
		Class:  domain.DemandHardWork,
		Reason: "slow days-to-sell or thin gross",
	},
	{
		Match:  func(_, _, _ float64) bool { return true },
		Class:  domain.DemandAverage,
		Reason: "no strong signal either way",
	},
}

// ClassifyDemand buckets the query vehicle's market from the comp set's
// average days-in-stock and average recomputed gross. The slow-mover
// override is applied after the statistical class: certain make/model
// combinations are forced to hard_work no matter how good the numbers look,
// which is deliberate buying policy rather than a data artifact.
func ClassifyDemand(q domain.QueryVehicle, comps []WeightedComp) DemandResult {
	res := DemandResult{AvgDays: defaultAvgDays}

	if len(comps) == 0 {
		res.Class = domain.DemandHardWork
		res.Reason = "no comparable sales"
		return applySlowMoverOverride(q, res)
	}

	var daysSum float64
	var daysN int
	var grossSum float64
	var losses int

	for _, c := range comps {
		if c.Record.DaysInStock > 0 {
			daysSum += float64(c.Record.DaysInStock)
			daysN++
		}
		gross := float64(c.Record.ComputedGross())
		grossSum += gross
		if gross < 0 {
			losses++
		}
	}

	if daysN > 0 {
		res.AvgDays = daysSum / float64(daysN)
	}
	res.AvgGross = grossSum / float64(len(comps))
	lossRatio := float64(losses) / float64(len(comps))

	for _, rule := range demandRules {
		if rule.Match(res.AvgDays, res.AvgGross, lossRatio) {
			res.Class = rule.Class
			res.Reason = rule.Reason
			break
		}
	}

	return applySlowMoverOverride(q, res)
}

func applySlowMoverOverride(q domain.QueryVehicle, res DemandResult) DemandResult {
	note, ok := slowMovers[modelKey(q.Make, q.Model)]
	if !ok {
		return res
	}
	if res.Class != domain.DemandFast && res.Class != domain.DemandAverage {
		return res
	}

	res.Class = domain.DemandHardWork
	res.Reason = fmt.Sprintf("overridden to hard_work: %s", note)
	res.Overridden = true
	return res
}
