package rating

import (
	"math"
	"strings"
)

const (
	// ModeRoad is reported for intra-state shipments.
	ModeRoad = "Road Transport"
	// ModeRoadRail is reported for inter-state shipments.
	ModeRoadRail = "Road/Rail Mix"
)

// Charge calculation failure messages. These are returned inside Quote and
// are short enough to display to buyers and sellers directly.
const (
	msgInvalidWeight   = "Weight must be greater than 0"
	msgWeightTooLarge  = "Weight exceeds maximum limit (10 tons)"
	msgMissingLocation = "Missing location information"
)

// Breakdown exposes the intermediate values of a successful charge
// calculation for display and audit.
type Breakdown struct {
	WeightInKg      float64 `json:"weightInKg"`
	BaseRatePerKg   float64 `json:"baseRatePerKg"`
	TierMultiplier  float64 `json:"tierMultiplier"`
	IsIntraState    bool    `json:"isIntraState"`
	IsPerishable    bool    `json:"isPerishable"`
	EstimatedMode   string  `json:"estimatedMode"`
	DiscountPercent float64 `json:"discountApplied"`
	RawCharge       int64   `json:"rawCharge"`
}

// Quote is the structured result of a charge calculation. Failures for the
// documented invalid-input cases are reported through Error rather than a
// Go error; the engine never panics.
type Quote struct {
	Success   bool       `json:"success"`
	Charge    int64      `json:"charge"`
	Error     string     `json:"error,omitempty"`
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

// Engine computes shipping charges from a fixed rate profile. All methods
// are pure functions of their inputs plus the profile, so a single Engine
// may be shared across request handlers without coordination.
type Engine struct {
	Profile Profile
}

// NewEngine constructs an engine over the provided profile.
func NewEngine(profile Profile) *Engine {
	return &Engine{Profile: profile}
}

// BaseRate resolves the blended per-kilogram rate for a route. The blend is
// a fixed-weight average of road and rail rates; the perishable uplift is
// folded in here so callers see a single effective rate.
func (e *Engine) BaseRate(isIntraState, isPerishable bool) float64 {
	p := e.Profile
	var rate float64
	if isIntraState {
		rate = p.RoadWeight*p.IntraStateRoadRate + p.RailWeight*p.IntraStateRailRate
	} else {
		rate = p.RoadWeight*p.InterStateRoadRate + p.RailWeight*p.InterStateRailRate
	}
	if isPerishable {
		rate *= p.PerishableUplift
	}
	return rate
}

// TierMultiplier returns the discount multiplier and display percentage for
// a shipment weight. Tiers are cliff-edged: the highest breakpoint strictly
// exceeded by the weight wins and its multiplier applies to the entire
// shipment, not just the portion above the breakpoint. The percentage is
// rounded to two decimals like the breakdown's other display fields, so a
// 0.85 multiplier reads as 15 rather than a float artifact.
func (e *Engine) TierMultiplier(weightInKg float64) (multiplier, discountPercent float64) {
	multiplier = 1.0
	for _, tier := range e.Profile.Tiers {
		if weightInKg > tier.BreakKg {
			multiplier = tier.Multiplier
			discountPercent = roundTo2((1 - tier.Multiplier) * 100)
		}
	}
	return multiplier, discountPercent
}

// Calculate converts the quantity to kilograms, resolves the blended rate
// for the route, applies the tier discount and returns a quote with a full
// breakdown. The charge is floored at the profile minimum and rounded to
// the nearest rupee.
func (e *Engine) Calculate(weight float64, unit, fromState, toState, category string) Quote {
	if weight <= 0 {
		return Quote{Error: msgInvalidWeight}
	}

	weightInKg := ToKilograms(weight, unit)

	// The cap is checked after conversion so a large piece count that
	// normalises to a small weight is still accepted.
	if weightInKg > e.Profile.MaxWeightKg {
		return Quote{Error: msgWeightTooLarge}
	}

	from := strings.ToLower(strings.TrimSpace(fromState))
	to := strings.ToLower(strings.TrimSpace(toState))
	if from == "" || to == "" {
		return Quote{Error: msgMissingLocation}
	}

	// Route comparison is plain string equality, not a geographic
	// authority; aliases and abbreviations are not canonicalised.
	isIntraState := from == to
	isPerishable := IsPerishableCategory(category)
	baseRatePerKg := e.BaseRate(isIntraState, isPerishable)

	tierMultiplier, discountPercent := e.TierMultiplier(weightInKg)
	rawCharge := weightInKg * baseRatePerKg * tierMultiplier
	charge := math.Round(math.Max(rawCharge, e.Profile.MinCharge))

	mode := ModeRoadRail
	if isIntraState {
		mode = ModeRoad
	}

	return Quote{
		Success: true,
		Charge:  int64(charge),
		Breakdown: &Breakdown{
			WeightInKg:      roundTo2(weightInKg),
			BaseRatePerKg:   roundTo2(baseRatePerKg),
			TierMultiplier:  tierMultiplier,
			IsIntraState:    isIntraState,
			IsPerishable:    isPerishable,
			EstimatedMode:   mode,
			DiscountPercent: discountPercent,
			RawCharge:       int64(math.Round(rawCharge)),
		},
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
