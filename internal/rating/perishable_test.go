package rating

import "testing"

func TestIsPerishableCategory(t *testing.T) {
	cases := []struct {
		category string
		want     bool
	}{
		{"Fresh Vegetables", true},
		{"fruits", true},
		{"  Dairy Products  ", true},
		{"Meat & Poultry", true},
		{"fish", true},
		{"Cut Flowers", true},
		{"Grains", false},
		{"Pulses", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		if got := IsPerishableCategory(tc.category); got != tc.want {
			t.Fatalf("IsPerishableCategory(%q) = %v, want %v", tc.category, got, tc.want)
		}
	}
}
