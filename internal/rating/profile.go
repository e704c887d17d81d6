package rating

// Tier pairs a weight breakpoint in kilograms with the rate multiplier that
// applies once a shipment strictly exceeds it.
type Tier struct {
	BreakKg    float64
	Multiplier float64
}

// Profile holds the tunable constants of the rating engine. Values reflect
// midpoints of Indian agricultural logistics ranges and are loaded from
// configuration rather than hardcoded at call sites.
type Profile struct {
	IntraStateRoadRate float64
	IntraStateRailRate float64
	InterStateRoadRate float64
	InterStateRailRate float64
	RoadWeight         float64
	RailWeight         float64
	PerishableUplift   float64
	MinCharge          float64
	MaxWeightKg        float64
	MinOrderValue      float64
	Tiers              []Tier
}

// DefaultProfile returns the standard rate card: blended road/rail pricing
// with a 70/30 modal split, +25% perishable uplift, a ₹50 floor per order
// and bulk discounts at 10 kg and 50 kg.
func DefaultProfile() Profile {
	return Profile{
		IntraStateRoadRate: 1.0,
		IntraStateRailRate: 0.55,
		InterStateRoadRate: 2.25,
		InterStateRailRate: 1.3,
		RoadWeight:         0.7,
		RailWeight:         0.3,
		PerishableUplift:   1.25,
		MinCharge:          50,
		MaxWeightKg:        10000,
		MinOrderValue:      3000,
		Tiers: []Tier{
			{BreakKg: 0, Multiplier: 1.0},
			{BreakKg: 10, Multiplier: 0.95},
			{BreakKg: 50, Multiplier: 0.85},
		},
	}
}
