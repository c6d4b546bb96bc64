package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testBom(id, code, name, volume string, unitCost string) *BomTable {
	return &BomTable{
		ID:          id,
		ProductCode: code,
		TableName:   name,
		Volume:      decimal.RequireFromString(volume),
		Items: BomItems{
			{Quantity: decimal.NewFromInt(1), ResolvedUnitCost: decimal.RequireFromString(unitCost)},
		},
	}
}

func TestResolveCombination(t *testing.T) {
	bomById := map[string]*BomTable{
		"bom-1": testBom("bom-1", "SS001", "玉米濃湯", "2.5", "30"),
		"bom-2": testBom("bom-2", "SS002", "南瓜濃湯", "3", "45"),
	}
	combo := &CustomCombination{
		ID:   "combo-1",
		Name: "濃湯雙件組",
		Products: CombinationProducts{
			{BomTableId: "bom-1", Quantity: decimal.NewFromInt(2)},
			{BomTableId: "bom-2", Quantity: decimal.NewFromInt(1)},
		},
	}

	resolved := ResolveCombination(combo, bomById)

	// 2*2.5 + 1*3
	if resolved.Volume.String() != "8" {
		t.Fatalf("expected volume 8, got %s", resolved.Volume.String())
	}
	// 2*30 + 1*45
	if resolved.Cost.String() != "105" {
		t.Fatalf("expected cost 105, got %s", resolved.Cost.String())
	}
	if len(resolved.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(resolved.Components))
	}
	first := resolved.Components[0]
	if first.ProductCode != "SS001" || first.TotalCost.String() != "60" {
		t.Fatalf("unexpected first component: %+v", first)
	}
}

func TestResolveCombination_MissingComponentContributesZero(t *testing.T) {
	bomById := map[string]*BomTable{
		"bom-1": testBom("bom-1", "SS001", "玉米濃湯", "2.5", "30"),
	}
	combo := &CustomCombination{
		ID:   "combo-1",
		Name: "濃湯雙件組",
		Products: CombinationProducts{
			{BomTableId: "bom-1", Quantity: decimal.NewFromInt(1)},
			{BomTableId: "bom-gone", Quantity: decimal.NewFromInt(3)},
		},
	}

	resolved := ResolveCombination(combo, bomById)

	if resolved.Volume.String() != "2.5" {
		t.Fatalf("expected volume 2.5, got %s", resolved.Volume.String())
	}
	if resolved.Cost.String() != "30" {
		t.Fatalf("expected cost 30, got %s", resolved.Cost.String())
	}
	// the dangling component stays in the breakdown
	if len(resolved.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(resolved.Components))
	}
	missing := resolved.Components[1]
	if missing.BomTableId != "bom-gone" || !missing.TotalCost.IsZero() {
		t.Fatalf("unexpected missing component: %+v", missing)
	}
}

func TestResolveCombination_CostScalesLinearly(t *testing.T) {
	bomById := map[string]*BomTable{
		"bom-1": testBom("bom-1", "SS001", "玉米濃湯", "2", "30"),
	}
	single := ResolveCombination(&CustomCombination{
		Products: CombinationProducts{{BomTableId: "bom-1", Quantity: decimal.NewFromInt(1)}},
	}, bomById)
	triple := ResolveCombination(&CustomCombination{
		Products: CombinationProducts{{BomTableId: "bom-1", Quantity: decimal.NewFromInt(3)}},
	}, bomById)

	if !triple.Cost.Equal(single.Cost.Mul(decimal.NewFromInt(3))) {
		t.Fatalf("expected cost to scale linearly: single %s, triple %s",
			single.Cost.String(), triple.Cost.String())
	}
	if !triple.Volume.Equal(single.Volume.Mul(decimal.NewFromInt(3))) {
		t.Fatalf("expected volume to scale linearly: single %s, triple %s",
			single.Volume.String(), triple.Volume.String())
	}
}
