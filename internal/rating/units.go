package rating

import "strings"

// piecesPerKg encodes the domain convention that 20 countable pieces
// (eggs being the canonical case) weigh one kilogram.
const piecesPerKg = 20

// ToKilograms converts a quantity expressed in an arbitrary unit into
// kilograms. Unit matching is case-insensitive after trimming. Unrecognised
// units fall back to a factor of 1 and are treated as already-kilograms;
// this is a deliberate permissive default, not a guarantee of correctness.
// No rounding is applied so downstream calculations keep full precision.
func ToKilograms(amount float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilogram":
		return amount
	case "piece", "pieces", "pcs":
		return amount / piecesPerKg
	case "gram", "g":
		return amount / 1000
	case "quintal", "q":
		return amount * 100
	case "ton", "tonne", "t":
		return amount * 1000
	default:
		return amount
	}
}
