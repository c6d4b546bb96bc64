package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCostRateScheme_Compute(t *testing.T) {
	scheme := CostRateScheme{
		AverageOrderValue:  decimal.RequireFromString("1000"),
		WarehouseLogistics: decimal.RequireFromString("30"),
		CardboardBox:       decimal.RequireFromString("20"),
		CreditCardFee:      decimal.RequireFromString("15"),
		OtherCosts: OtherCosts{
			{Name: "包材", Amount: decimal.RequireFromString("10"), IncludeTax: true},
		},
		TaxInclusions: TaxInclusions{
			AverageOrderValue:  true,
			WarehouseLogistics: true,
		},
	}
	scheme.Compute()

	// 50 (avg tax) + 75 (costs) - 1.5 (warehouse tax) - 0.5 (other tax)
	if scheme.TotalCost.String() != "123" {
		t.Fatalf("expected total cost 123, got %s", scheme.TotalCost.String())
	}
	if scheme.CostRate.String() != "12.3" {
		t.Fatalf("expected cost rate 12.3, got %s", scheme.CostRate.String())
	}
}

func TestCostRateScheme_ComputeNoTaxFlags(t *testing.T) {
	scheme := CostRateScheme{
		AverageOrderValue:  decimal.RequireFromString("500"),
		WarehouseLogistics: decimal.RequireFromString("30"),
		CardboardBox:       decimal.RequireFromString("20"),
		CreditCardFee:      decimal.RequireFromString("25"),
	}
	scheme.Compute()

	if scheme.TotalCost.String() != "75" {
		t.Fatalf("expected total cost 75, got %s", scheme.TotalCost.String())
	}
	if scheme.CostRate.String() != "15" {
		t.Fatalf("expected cost rate 15, got %s", scheme.CostRate.String())
	}
}

func TestCostRateScheme_ComputeZeroAverage(t *testing.T) {
	scheme := CostRateScheme{
		WarehouseLogistics: decimal.RequireFromString("30"),
	}
	scheme.Compute()

	if scheme.TotalCost.String() != "30" {
		t.Fatalf("expected total cost 30, got %s", scheme.TotalCost.String())
	}
	if !scheme.CostRate.IsZero() {
		t.Fatalf("expected zero cost rate for zero average order value, got %s", scheme.CostRate.String())
	}
}
