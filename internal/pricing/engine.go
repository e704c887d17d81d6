package pricing

// Money represents a monetary value in whole rupees.
type Money = int64

// Item describes a line item used for pricing calculation.
type Item struct {
	Qty       float64
	Unit      string
	UnitPrice Money
}

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal Money
	Tax      Money
	Shipping Money
	Total    Money
}

// Compute calculates order totals given the provided inputs. Quantities are
// fractional because produce is sold by weight; line subtotals are rounded
// down to whole rupees.
func Compute(items []Item, taxBps int, shipping Money) Summary {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty * float64(it.UnitPrice))
	}
	tax := (subtotal * Money(taxBps)) / 10000
	total := subtotal + tax + shipping
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    total,
	}
}
