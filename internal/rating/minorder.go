package rating

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinimumOrderCheck reports whether an order clears the minimum order value
// and, when it does not, how much more is needed.
type MinimumOrderCheck struct {
	IsValid    bool    `json:"isValid"`
	TotalValue float64 `json:"totalValue"`
	Shortfall  float64 `json:"shortfall"`
	Message    string  `json:"message,omitempty"`
}

// ValidateMinimumOrder checks the combined product and shipping value
// against the profile's minimum order threshold. The boundary is inclusive:
// a total exactly at the threshold passes.
func (e *Engine) ValidateMinimumOrder(productPrice, shippingCharge float64) MinimumOrderCheck {
	totalValue := productPrice + shippingCharge
	shortfall := math.Max(0, e.Profile.MinOrderValue-totalValue)

	if totalValue < e.Profile.MinOrderValue {
		return MinimumOrderCheck{
			TotalValue: totalValue,
			Shortfall:  shortfall,
			Message: fmt.Sprintf(
				"Minimum order value is ₹%s. Please add ₹%s more to proceed.",
				FormatINR(e.Profile.MinOrderValue),
				FormatINR(shortfall),
			),
		}
	}

	return MinimumOrderCheck{IsValid: true, TotalValue: totalValue}
}

// FormatINR renders an amount with Indian digit grouping (lakh/crore style,
// e.g. 125000 -> "1,25,000"). Fractional paise are kept to two places when
// present. Display-only; numeric contracts are never formatted.
func FormatINR(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	rounded := math.Round(amount*100) / 100
	intPart := int64(rounded)
	frac := rounded - float64(intPart)

	grouped := groupIndian(strconv.FormatInt(intPart, 10))
	if frac > 0 {
		cents := int64(math.Round(frac * 100))
		grouped = fmt.Sprintf("%s.%02d", grouped, cents)
	}
	if negative {
		return "-" + grouped
	}
	return grouped
}

// groupIndian inserts separators after the last three digits and then every
// two digits: "1234567" -> "12,34,567".
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	parts = append(parts, tail)
	return strings.Join(parts, ",")
}
