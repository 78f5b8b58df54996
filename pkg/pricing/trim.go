package pricing

import (
	"strings"
)

// TrimMatch is the outcome of a trim-ladder comparison.
type TrimMatch string

// Trim match outcomes. TrimReject means the candidate sale cannot stand in
// for the listing's trim.
const (
	TrimExact   TrimMatch = "EXACT"
	TrimUpgrade TrimMatch = "UPGRADE"
	TrimReject  TrimMatch = ""
)

// standardTrimSuffix is appended to the model name for vehicles whose model
// has no trim substring table.
const standardTrimSuffix = "_STANDARD"

// TrimClass derives the canonical trim code for a vehicle from its free-text
// variant/badge field. Models without a substring table fall back to
// "<MODEL>_STANDARD" so every vehicle resolves to some code.
func TrimClass(make, model, variantText string) string {
	rules, ok := trimRules[modelKey(make, model)]
	if ok {
		badge := strings.ToUpper(variantText)
		for _, r := range rules {
			if strings.Contains(badge, r.Substr) {
				return r.Code
			}
		}
	}
	fallback := strings.ToUpper(strings.ReplaceAll(normalize(model), " ", "_"))
	return fallback + standardTrimSuffix
}

// TrimAllowed decides whether a historical sale's trim may serve as a
// comparable for the listing being priced. Exact codes always pass. Otherwise
// the per-model ladder is consulted and the sale passes only when it sits
// exactly one rung below the listing: a cheaper trim that actually sold is
// acceptable evidence, but a pricier trim is never assumed to behave like a
// cheaper one. Models absent from the ladder pass on exact match only.
func TrimAllowed(make, model, listingTrim, saleTrim string) TrimMatch {
	if listingTrim == saleTrim {
		return TrimExact
	}

	ladder, ok := trimLadders[modelKey(make, model)]
	if !ok {
		return TrimReject
	}

	listingRank, ok := ladder[listingTrim]
	if !ok {
		return TrimReject
	}
	saleRank, ok := ladder[saleTrim]
	if !ok {
		return TrimReject
	}

	if listingRank == saleRank+1 {
		return TrimUpgrade
	}
	return TrimReject
}
