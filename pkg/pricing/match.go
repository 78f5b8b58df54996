// Package pricing implements the OANCA deterministic buy-price engine:
// comparable selection, recency-weighted cost statistics, demand
// classification, bounded buy-range computation, and the verdict state
// machine. Everything here is pure; given the same query, pool, and clock
// instant the output is identical.
package pricing

import (
	"strings"

	domain "github.com/mackayauctioneers-design/oanca/pkg/types"
)

// normalize lowercases, trims, and collapses internal whitespace so that
// free-text make/model/variant fields compare predictably.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

// matchText reports whether two free-text fields match under the loose
// either-direction containment rule ("Chev" matches "Chevrolet" and vice
// versa). Empty on either side is no match; callers that treat absence as a
// pass must check for it first. Deliberately loose: tightening this to
// edit-distance matching changes business outcomes.
func matchText(a, b string) bool {
	a, b = normalize(a), normalize(b)
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// modelKey builds the "make|model" lookup key used by the rule tables.
func modelKey(make, model string) string {
	return normalize(make) + "|" + normalize(model)
}

// DrivetrainBucket maps free-text drivetrain descriptions to a coarse
// 2WD / 4X4 / UNKNOWN bucket.
func DrivetrainBucket(s string) domain.Drivetrain {
	n := normalize(s)
	switch {
	case n == "":
		return domain.DrivetrainUnknown
	case strings.Contains(n, "4x4"),
		strings.Contains(n, "4wd"),
		strings.Contains(n, "awd"),
		strings.Contains(n, "four wheel"):
		return domain.Drivetrain4X4
	case strings.Contains(n, "4x2"),
		strings.Contains(n, "2wd"),
		strings.Contains(n, "rwd"),
		strings.Contains(n, "fwd"):
		return domain.Drivetrain2WD
	default:
		return domain.DrivetrainUnknown
	}
}
