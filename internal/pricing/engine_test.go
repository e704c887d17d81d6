package pricing

import "testing"

func TestComputeTotals(t *testing.T) {
	items := []Item{
		{Qty: 100, Unit: "kg", UnitPrice: 25},
		{Qty: 2, Unit: "quintal", UnitPrice: 2400},
		{Qty: -5, Unit: "kg", UnitPrice: 100}, // ignored
	}
	summary := Compute(items, 0, 835)
	if summary.Subtotal != 2500+4800 {
		t.Fatalf("subtotal = %d, want 7300", summary.Subtotal)
	}
	if summary.Total != 7300+835 {
		t.Fatalf("total = %d, want 8135", summary.Total)
	}
}

func TestComputeWithTax(t *testing.T) {
	summary := Compute([]Item{{Qty: 1, UnitPrice: 10000}}, 500, 0)
	if summary.Tax != 500 {
		t.Fatalf("tax = %d, want 500", summary.Tax)
	}
	if summary.Total != 10500 {
		t.Fatalf("total = %d, want 10500", summary.Total)
	}
}
