package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeriveUnitCost(t *testing.T) {
	cases := []struct {
		purchase string
		unit     string
		expected string
	}{
		{"100", "8", "12.5"},
		{"10", "3", "3.33"},
		{"20", "3", "6.67"},
		{"0.05", "10", "0.01"},
		{"100", "0", "0"},
		{"0", "5", "0"},
	}
	for _, tc := range cases {
		got := DeriveUnitCost(
			decimal.RequireFromString(tc.purchase),
			decimal.RequireFromString(tc.unit))
		if got.String() != tc.expected {
			t.Fatalf("DeriveUnitCost(%s, %s) expected %s, got %s",
				tc.purchase, tc.unit, tc.expected, got.String())
		}
	}
}
