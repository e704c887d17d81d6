package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-mandi/internal/checkout"
	"github.com/noah-isme/backend-mandi/internal/rating"
)

func newService(taxBps int) *checkout.Service {
	return &checkout.Service{
		Engine: rating.NewEngine(rating.DefaultProfile()),
		TaxBps: taxBps,
	}
}

func TestPreviewRatesEachLine(t *testing.T) {
	svc := newService(0)

	preview, err := svc.Preview([]checkout.Line{
		{
			ProductID: "p1",
			Title:     "Sharbati Wheat",
			Category:  "Grains",
			Quantity:  500,
			Unit:      "kg",
			UnitPrice: 25,
			FromState: "Maharashtra",
		},
		{
			ProductID: "p2",
			Title:     "Nashik Red Onion",
			Category:  "Vegetables",
			Quantity:  20,
			Unit:      "kg",
			UnitPrice: 18,
			FromState: "Delhi",
		},
	}, "Delhi")
	require.NoError(t, err)
	require.Len(t, preview.Lines, 2)

	// Line 1: 500kg inter-state, 15% tier: 500 * 1.965 * 0.85 -> 835.
	require.True(t, preview.Lines[0].Quote.Success)
	require.Equal(t, int64(835), preview.Lines[0].Quote.Charge)

	// Line 2: 20kg intra-state perishable, 5% tier:
	// 20 * 0.865 * 1.25 * 0.95 = 20.54 -> floored to minimum 50.
	require.True(t, preview.Lines[1].Quote.Success)
	require.Equal(t, int64(50), preview.Lines[1].Quote.Charge)
	require.Contains(t, preview.Lines[1].Display, "(Refrigerated)")

	require.Equal(t, int64(12860), preview.Summary.Subtotal)
	require.Equal(t, int64(885), preview.Summary.Shipping)
	require.Equal(t, int64(13745), preview.Summary.Total)
	require.True(t, preview.MinOrder.IsValid)
}

func TestPreviewTaxAppliedToSubtotal(t *testing.T) {
	svc := newService(500)

	preview, err := svc.Preview([]checkout.Line{
		{ProductID: "p1", Quantity: 100, Unit: "kg", UnitPrice: 100, FromState: "Punjab"},
	}, "Punjab")
	require.NoError(t, err)

	require.Equal(t, int64(10000), preview.Summary.Subtotal)
	require.Equal(t, int64(500), preview.Summary.Tax)
}

func TestPreviewKeepsFailedLines(t *testing.T) {
	svc := newService(0)

	preview, err := svc.Preview([]checkout.Line{
		{ProductID: "p1", Quantity: 500, Unit: "kg", UnitPrice: 25, FromState: ""},
		{ProductID: "p2", Quantity: 100, Unit: "kg", UnitPrice: 30, FromState: "Punjab"},
	}, "Punjab")
	require.NoError(t, err)
	require.Len(t, preview.Lines, 2)

	require.False(t, preview.Lines[0].Quote.Success)
	require.Equal(t, "Missing location information", preview.Lines[0].Quote.Error)
	require.Equal(t, "Unable to calculate shipping", preview.Lines[0].Display)

	// Failed line still counts toward the subtotal, only shipping is skipped.
	// Good line: 100 kg exceeds the 50 kg breakpoint, so
	// 100 * 0.865 * 0.85 = 73.525 -> 74.
	require.Equal(t, int64(74), preview.Summary.Shipping)
	require.Equal(t, int64(15500), preview.Summary.Subtotal)
}

func TestPreviewMinOrderGate(t *testing.T) {
	svc := newService(0)

	preview, err := svc.Preview([]checkout.Line{
		{ProductID: "p1", Quantity: 50, Unit: "kg", UnitPrice: 20, FromState: "Punjab"},
	}, "Punjab")
	require.NoError(t, err)

	require.False(t, preview.MinOrder.IsValid)
	require.Contains(t, preview.MinOrder.Message, "Minimum order value is ₹3,000")
}

func TestPreviewEmptyCart(t *testing.T) {
	_, err := newService(0).Preview(nil, "Punjab")
	require.ErrorIs(t, err, checkout.ErrEmptyCart)
}
