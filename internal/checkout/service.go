package checkout

import (
	"errors"

	"github.com/noah-isme/backend-mandi/internal/pricing"
	"github.com/noah-isme/backend-mandi/internal/rating"
)

// ErrEmptyCart is returned when a preview has no usable lines.
var ErrEmptyCart = errors.New("cart has no items")

// Line is one cart entry submitted for preview.
type Line struct {
	ProductID string
	Title     string
	Category  string
	Quantity  float64
	Unit      string
	UnitPrice pricing.Money
	FromState string
}

// LineQuote pairs a cart line with its shipping quote.
type LineQuote struct {
	ProductID string
	Title     string
	Quote     rating.Quote
	Display   string
}

// Preview is the full checkout preview: per-line shipping, order totals
// and the minimum-order gate.
type Preview struct {
	Lines    []LineQuote
	Summary  pricing.Summary
	MinOrder rating.MinimumOrderCheck
}

// Service assembles checkout previews. Shipping is rated per line because
// commodities ship from different seller states, then summed into the order
// total.
type Service struct {
	Engine *rating.Engine
	TaxBps int
}

// Preview rates every line to the buyer's state and folds the charges into
// the order summary. A line whose quote fails is kept in the response with
// its failure message and contributes nothing to the shipping total.
func (s *Service) Preview(lines []Line, toState string) (Preview, error) {
	if len(lines) == 0 {
		return Preview{}, ErrEmptyCart
	}

	quotes := make([]LineQuote, 0, len(lines))
	items := make([]pricing.Item, 0, len(lines))
	var shipping pricing.Money

	for _, line := range lines {
		quote := s.Engine.Calculate(line.Quantity, line.Unit, line.FromState, toState, line.Category)
		quotes = append(quotes, LineQuote{
			ProductID: line.ProductID,
			Title:     line.Title,
			Quote:     quote,
			Display:   rating.FormatBreakdown(quote),
		})
		if quote.Success {
			shipping += quote.Charge
		}
		items = append(items, pricing.Item{
			Qty:       line.Quantity,
			Unit:      line.Unit,
			UnitPrice: line.UnitPrice,
		})
	}

	summary := pricing.Compute(items, s.TaxBps, shipping)
	minOrder := s.Engine.ValidateMinimumOrder(float64(summary.Subtotal), float64(shipping))

	return Preview{Lines: quotes, Summary: summary, MinOrder: minOrder}, nil
}
