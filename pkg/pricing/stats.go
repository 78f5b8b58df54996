package pricing

import (
	"sort"
)

// OweStats holds the cost-basis statistics for a comp set. All figures are
// whole AUD over comps with a positive OWE.
type OweStats struct {
	Median         int
	P75            int
	Max            int
	WeightedMedian int
	N              int
}

// ComputeOweStats computes median, 75th percentile, max, and the
// recency-weighted median of total acquisition cost over the comp set.
// Comps without a positive cost basis are excluded. Returns nil when no comp
// qualifies.
//
// Median and P75 are nearest-rank (sorted index floor(n/2) and floor(n*0.75)),
// not interpolated. Changing that moves every buy-range boundary, so it stays
// nearest-rank absent a policy decision.
func ComputeOweStats(comps []WeightedComp) *OweStats {
	usable := make([]WeightedComp, 0, len(comps))
	for _, c := range comps {
		if c.Record.TotalCost > 0 {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	sort.SliceStable(usable, func(i, j int) bool {
		return usable[i].Record.TotalCost < usable[j].Record.TotalCost
	})

	n := len(usable)
	values := make([]int, n)
	for i, c := range usable {
		values[i] = c.Record.TotalCost
	}

	return &OweStats{
		Median:         values[n/2],
		P75:            values[n*3/4],
		Max:            values[n-1],
		WeightedMedian: weightedMedian(usable),
		N:              n,
	}
}

// weightedMedian walks the cost-sorted comps accumulating recency weight and
// returns the cost at which the running total first reaches half the total
// weight. Recent sales therefore pull the anchor toward themselves.
func weightedMedian(sorted []WeightedComp) int {
	var total float64
	for _, c := range sorted {
		total += c.Weight
	}

	half := total / 2
	var cum float64
	for _, c := range sorted {
		cum += c.Weight
		if cum >= half {
			return c.Record.TotalCost
		}
	}
	return sorted[len(sorted)-1].Record.TotalCost
}
