package rating

import "strings"

// perishableCategories lists category keywords that require refrigerated or
// expedited transport. Matching is by substring so "Fresh Vegetables" and
// "dairy products" both qualify.
var perishableCategories = []string{
	"vegetables",
	"fruits",
	"dairy",
	"meat",
	"fish",
	"flowers",
}

// IsPerishableCategory reports whether the product category needs
// refrigerated handling. Empty or unknown categories are non-perishable
// and ship at the standard rate.
func IsPerishableCategory(category string) bool {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return false
	}
	for _, keyword := range perishableCategories {
		if strings.Contains(normalized, keyword) {
			return true
		}
	}
	return false
}
