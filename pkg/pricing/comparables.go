package pricing

import (
	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// yearWindow is the maximum model-year distance for a comparable.
const yearWindow = 4

// SelectComparables filters the historical pool down to records that may
// inform pricing for the query vehicle. This is a boolean filter, not a
// scored match: a record either qualifies under every rule or it is out.
func SelectComparables(q domain.QueryVehicle, pool []domain.SalesRecord) []domain.SalesRecord {
	listingTrim := TrimClass(q.Make, q.Model, q.VariantFamily)
	// The query has no dedicated drivetrain field; the badge and spec text
	// carry the signal when there is one.
	queryDrive := DrivetrainBucket(q.VariantFamily + " " + q.Transmission + " " + q.Engine)

	var comps []domain.SalesRecord
	for i := range pool {
		if isComparable(q, &pool[i], listingTrim, queryDrive) {
			comps = append(comps, pool[i])
		}
	}
	return comps
}

func isComparable(
	q domain.QueryVehicle,
	r *domain.SalesRecord,
	listingTrim string,
	queryDrive domain.Drivetrain,
) bool {
	if !matchText(q.Make, r.Make) {
		return false
	}
	if !matchText(q.Model, r.Model) {
		return false
	}

	if abs(r.Year-q.Year) > yearWindow {
		return false
	}

	// Variant family: absence on either side skips the check.
	if q.VariantFamily != "" && r.VariantFamily != "" &&
		!matchText(q.VariantFamily, r.VariantFamily) {
		return false
	}

	saleTrim := TrimClass(r.Make, r.Model, r.Variant+" "+r.VariantFamily)
	if TrimAllowed(q.Make, q.Model, listingTrim, saleTrim) == TrimReject {
		return false
	}

	// Drivetrain buckets must agree when both sides resolve.
	saleDrive := DrivetrainBucket(r.Drivetrain)
	if queryDrive != domain.DrivetrainUnknown &&
		saleDrive != domain.DrivetrainUnknown &&
		queryDrive != saleDrive {
		return false
	}

	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
