package rating

import "fmt"

// FormatBreakdown renders a one-line human readable summary of a quote for
// UI display. It is not part of the computational contract.
func FormatBreakdown(q Quote) string {
	if !q.Success || q.Breakdown == nil {
		return "Unable to calculate shipping"
	}

	b := q.Breakdown
	text := fmt.Sprintf("%vkg via %s", b.WeightInKg, b.EstimatedMode)
	if b.IsPerishable {
		text += " (Refrigerated)"
	}
	if b.DiscountPercent > 0 {
		text += fmt.Sprintf(" • %v%% bulk discount", b.DiscountPercent)
	}
	return text
}
