package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceFromMargin(t *testing.T) {
	cases := []struct {
		cost      string
		margin    string
		logistics string
		expected  string
	}{
		{"100", "50", "0", "200"},
		{"100", "40", "10", "200"},
		{"60", "25", "5", "85.71"},
		{"100", "100", "0", "0"},
		{"100", "90", "20", "0"},
		{"0", "30", "0", "0"},
	}
	for _, tc := range cases {
		got := PriceFromMargin(
			decimal.RequireFromString(tc.cost),
			decimal.RequireFromString(tc.margin),
			decimal.RequireFromString(tc.logistics))
		if got.String() != tc.expected {
			t.Fatalf("PriceFromMargin(%s, %s, %s) expected %s, got %s",
				tc.cost, tc.margin, tc.logistics, tc.expected, got.String())
		}
	}
}

func TestMarginFromPrice(t *testing.T) {
	cases := []struct {
		price    string
		cost     string
		expected string
	}{
		{"200", "100", "50"},
		{"150", "100", "33.33"},
		{"100", "100", "0"},
		{"80", "100", "-25"},
		{"0", "100", "0"},
	}
	for _, tc := range cases {
		got := MarginFromPrice(
			decimal.RequireFromString(tc.price),
			decimal.RequireFromString(tc.cost))
		if got.String() != tc.expected {
			t.Fatalf("MarginFromPrice(%s, %s) expected %s, got %s",
				tc.price, tc.cost, tc.expected, got.String())
		}
	}
}

func TestPriceMarginRoundTrip(t *testing.T) {
	cost := decimal.RequireFromString("120")
	margin := decimal.RequireFromString("40")
	price := PriceFromMargin(cost, margin, decimal.Zero)
	back := MarginFromPrice(price, cost)
	if back.String() != "40" {
		t.Fatalf("expected margin 40 back from derived price %s, got %s", price.String(), back.String())
	}
}

func TestCostWithLogistics(t *testing.T) {
	cases := []struct {
		cost     string
		rate     string
		expected string
	}{
		{"100", "10", "110"},
		{"100", "0", "100"},
		{"55.5", "12", "62.16"},
	}
	for _, tc := range cases {
		got := CostWithLogistics(
			decimal.RequireFromString(tc.cost),
			decimal.RequireFromString(tc.rate))
		if got.String() != tc.expected {
			t.Fatalf("CostWithLogistics(%s, %s) expected %s, got %s",
				tc.cost, tc.rate, tc.expected, got.String())
		}
	}
}
