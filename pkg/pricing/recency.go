package pricing

import (
	"time"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// WeightedComp pairs a comparable sale with its recency weight. Built fresh
// on every engine call and discarded afterwards.
type WeightedComp struct {
	Record domain.SalesRecord
	Weight float64
	Months int
}

// avgDaysPerMonth is the mean Gregorian month length used to convert sale
// age to whole months. Ages truncate, so a comp only ages into a month once
// it has fully passed it.
const avgDaysPerMonth = 30.44

// fallbackMonths is the age assigned to records with a missing or future
// sale date. They land in the oldest weight band instead of failing.
const fallbackMonths = 99

// recencyBand maps a maximum age in months to a weight.
type recencyBand struct {
	MaxMonths int
	Weight    float64
}

// recencyBands decay from full weight at six months to 0.2 beyond three
// years. Evaluated in order; the last band is the catch-all.
var recencyBands = []recencyBand{
	{MaxMonths: 6, Weight: 1.0},
	{MaxMonths: 12, Weight: 0.85},
	{MaxMonths: 24, Weight: 0.65},
	{MaxMonths: 36, Weight: 0.4},
}

const oldestWeight = 0.2

// Recency returns the decay weight and age in months for a sale date.
// A zero or future date falls into the oldest band rather than erroring.
func Recency(saleDate, now time.Time) (weight float64, months int) {
	if saleDate.IsZero() || saleDate.After(now) {
		return oldestWeight, fallbackMonths
	}

	months = int(now.Sub(saleDate).Hours() / (24 * avgDaysPerMonth))

	for _, band := range recencyBands {
		if months <= band.MaxMonths {
			return band.Weight, months
		}
	}
	return oldestWeight, months
}

// BuildWeightedComps attaches recency weights to each comparable.
func BuildWeightedComps(comps []domain.SalesRecord, now time.Time) []WeightedComp {
	out := make([]WeightedComp, 0, len(comps))
	for i := range comps {
		w, m := Recency(comps[i].SaleDate, now)
		out = append(out, WeightedComp{Record: comps[i], Weight: w, Months: m})
	}
	return out
}
