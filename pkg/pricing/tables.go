package pricing

// Business-rule constants. These are fixed tables, not configuration: they
// encode buying policy agreed with the wholesale desk and only change by
// code review.

// trimRule maps a substring found in free-text variant/badge fields to a
// canonical trim code. Rules are evaluated in order; first match wins, so
// longer badges (GXL) must precede their prefixes (GX).
type trimRule struct {
	Substr string
	Code   string
}

// trimRules is keyed by normalized "make|model".
var trimRules = map[string][]trimRule{
	"toyota|landcruiser": {
		{"SAHARA", "LC200_SAHARA"},
		{"VX", "LC200_VX"},
		{"GXL", "LC200_GXL"},
		{"GX", "LC200_GX"},
		{"WORKMATE", "LC70_WORKMATE"},
	},
	"toyota|prado": {
		{"KAKADU", "PRADO_KAKADU"},
		{"VX", "PRADO_VX"},
		{"GXL", "PRADO_GXL"},
		{"GX", "PRADO_GX"},
	},
	"toyota|hilux": {
		{"ROGUE", "HILUX_ROGUE"},
		{"SR5", "HILUX_SR5"},
		{"SR", "HILUX_SR"},
		{"WORKMATE", "HILUX_WORKMATE"},
	},
	"ford|ranger": {
		{"RAPTOR", "RANGER_RAPTOR"},
		{"WILDTRAK", "RANGER_WILDTRAK"},
		{"SPORT", "RANGER_SPORT"},
		{"XLT", "RANGER_XLT"},
		{"XLS", "RANGER_XLS"},
		{"XL", "RANGER_XL"},
	},
	"isuzu|d-max": {
		{"X-TERRAIN", "DMAX_XTERRAIN"},
		{"LS-U", "DMAX_LSU"},
		{"LS-M", "DMAX_LSM"},
		{"SX", "DMAX_SX"},
	},
	"nissan|navara": {
		{"PRO-4X", "NAVARA_PRO4X"},
		{"ST-X", "NAVARA_STX"},
		{"ST", "NAVARA_ST"},
		{"SL", "NAVARA_SL"},
	},
	"mitsubishi|triton": {
		{"GSR", "TRITON_GSR"},
		{"GLS", "TRITON_GLS"},
		{"GLX+", "TRITON_GLXPLUS"},
		{"GLX", "TRITON_GLX"},
	},
}

// trimLadders ranks trim codes per model, base trim first. A historical sale
// may substitute for a listing at the same rank or exactly one rank higher;
// models absent from this table only ever pass on exact trim match.
var trimLadders = map[string]map[string]int{
	"toyota|landcruiser": {
		"LC200_GX":     0,
		"LC200_GXL":    1,
		"LC200_VX":     2,
		"LC200_SAHARA": 3,
	},
	"toyota|prado": {
		"PRADO_GX":     0,
		"PRADO_GXL":    1,
		"PRADO_VX":     2,
		"PRADO_KAKADU": 3,
	},
	"toyota|hilux": {
		"HILUX_WORKMATE": 0,
		"HILUX_SR":       1,
		"HILUX_SR5":      2,
		"HILUX_ROGUE":    3,
	},
	"ford|ranger": {
		"RANGER_XL":       0,
		"RANGER_XLS":      1,
		"RANGER_XLT":      2,
		"RANGER_SPORT":    3,
		"RANGER_WILDTRAK": 4,
		"RANGER_RAPTOR":   5,
	},
	"isuzu|d-max": {
		"DMAX_SX":       0,
		"DMAX_LSM":      1,
		"DMAX_LSU":      2,
		"DMAX_XTERRAIN": 3,
	},
	"nissan|navara": {
		"NAVARA_SL":    0,
		"NAVARA_ST":    1,
		"NAVARA_STX":   2,
		"NAVARA_PRO4X": 3,
	},
	"mitsubishi|triton": {
		"TRITON_GLX":     0,
		"TRITON_GLXPLUS": 1,
		"TRITON_GLS":     2,
		"TRITON_GSR":     3,
	},
}

// slowMovers lists make/model combinations that are chronically slow to
// retail regardless of what the comp statistics say. The value is the note
// attached when the override fires.
var slowMovers = map[string]string{
	"holden|cruze":     "known slow mover: Cruze retails hard in every market",
	"holden|captiva":   "known slow mover: Captiva carries reliability stigma",
	"holden|barina":    "known slow mover: orphaned brand small car",
	"ford|ecosport":    "known slow mover: EcoSport sits 60+ days everywhere",
	"nissan|pulsar":    "known slow mover: discontinued with heavy fleet supply",
	"jeep|cherokee":    "known slow mover: Cherokee resale sentiment is poor",
	"jeep|compass":     "known slow mover: Compass resale sentiment is poor",
	"mitsubishi|asx":   "known slow mover: ASX oversupplied from rental fleets",
	"holden|commodore": "known slow mover: ZB Commodore lacks a buyer base",
}

// truckRule flags high-value American pickups. These escalate rather than
// price when comp coverage is thin, and heavy-duty variants carry a hard AUD
// floor below which a computed range is never trusted.
type truckRule struct {
	Make      string
	Keywords  []string
	HeavyDuty bool
	FloorAUD  int
}

var highValueTrucks = []truckRule{
	{Make: "chevrolet", Keywords: []string{"silverado", "1500"}},
	{Make: "chevrolet", Keywords: []string{"silverado", "2500"}, HeavyDuty: true, FloorAUD: 85000},
	{Make: "chevrolet", Keywords: []string{"silverado", "3500"}, HeavyDuty: true, FloorAUD: 95000},
	{Make: "ram", Keywords: []string{"1500"}},
	{Make: "ram", Keywords: []string{"2500"}, HeavyDuty: true, FloorAUD: 85000},
	{Make: "ram", Keywords: []string{"3500"}, HeavyDuty: true, FloorAUD: 95000},
	{Make: "ford", Keywords: []string{"f-150"}},
	{Make: "ford", Keywords: []string{"f-250"}, HeavyDuty: true, FloorAUD: 85000},
	{Make: "ford", Keywords: []string{"f-350"}, HeavyDuty: true, FloorAUD: 95000},
	{Make: "gmc", Keywords: []string{"sierra", "1500"}},
	{Make: "gmc", Keywords: []string{"sierra", "2500"}, HeavyDuty: true, FloorAUD: 85000},
	{Make: "toyota", Keywords: []string{"tundra"}},
}

// Forced-escalation thresholds for the truck table.
const (
	truckEscalationMinYear  = 2018
	truckEscalationMinComps = 3
)
