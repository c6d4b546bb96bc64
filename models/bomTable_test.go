package models

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func stubLookup(materials map[string]*SharedMaterial) MaterialLookup {
	return func(ctx context.Context, id string) (*SharedMaterial, error) {
		return materials[id], nil
	}
}

func TestBomItem_LineCost(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
		unitCost string
		isTaxed  bool
		expected string
	}{
		{"untaxed", "2", "10", false, "20"},
		{"taxed", "2", "10", true, "21"},
		{"taxed fractional", "3", "1.25", true, "3.9375"},
		{"zero cost", "5", "0", true, "0"},
	}
	for _, tc := range cases {
		item := BomItem{
			Quantity:         decimal.RequireFromString(tc.quantity),
			ResolvedUnitCost: decimal.RequireFromString(tc.unitCost),
			IsTaxed:          tc.isTaxed,
		}
		got := item.LineCost()
		if got.String() != tc.expected {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.expected, got.String())
		}
	}
}

func TestBomItem_ResolveSharedReference(t *testing.T) {
	lookup := stubLookup(map[string]*SharedMaterial{
		"mat-001": {
			ID:       "mat-001",
			Name:     "玉米粒",
			UnitCost: decimal.RequireFromString("3.75"),
		},
	})

	item := BomItem{
		Name:     NewRef("mat-001"),
		Quantity: decimal.NewFromInt(4),
		UnitCost: NewRef("mat-001"),
		IsShared: true,
	}
	if err := item.Resolve(context.Background(), lookup); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if item.ResolvedName != "玉米粒" {
		t.Fatalf("expected resolved name 玉米粒, got %q", item.ResolvedName)
	}
	if item.ResolvedUnitCost.String() != "3.75" {
		t.Fatalf("expected resolved cost 3.75, got %s", item.ResolvedUnitCost.String())
	}
	if item.LineCost().String() != "15" {
		t.Fatalf("expected line cost 15, got %s", item.LineCost().String())
	}
}

func TestBomItem_ResolveMissingMaterialIsZero(t *testing.T) {
	lookup := stubLookup(nil)

	item := BomItem{
		Name:     NewRef("gone"),
		Quantity: decimal.NewFromInt(4),
		UnitCost: NewRef("gone"),
		IsShared: true,
	}
	if err := item.Resolve(context.Background(), lookup); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !item.ResolvedUnitCost.IsZero() {
		t.Fatalf("expected zero cost for deleted material, got %s", item.ResolvedUnitCost.String())
	}
	if !item.LineCost().IsZero() {
		t.Fatalf("expected zero line cost, got %s", item.LineCost().String())
	}
}

func TestBomItem_ResolveLookupErrorAborts(t *testing.T) {
	lookupErr := errors.New("store unavailable")
	lookup := func(ctx context.Context, id string) (*SharedMaterial, error) {
		return nil, lookupErr
	}

	item := BomItem{
		UnitCost: NewRef("mat-001"),
		Quantity: decimal.NewFromInt(1),
	}
	if err := item.Resolve(context.Background(), lookup); !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}

func TestBomItem_ResolveLiteralCost(t *testing.T) {
	item := BomItem{
		Name:     NewLiteral("雞胸肉"),
		Quantity: decimal.NewFromInt(2),
		UnitCost: NewNumericLiteral(decimal.RequireFromString("8.5")),
	}
	if err := item.Resolve(context.Background(), stubLookup(nil)); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if item.ResolvedName != "雞胸肉" {
		t.Fatalf("expected literal name, got %q", item.ResolvedName)
	}
	if item.ResolvedUnitCost.String() != "8.5" {
		t.Fatalf("expected cost 8.5, got %s", item.ResolvedUnitCost.String())
	}
}

func TestBomTable_ComputeCost(t *testing.T) {
	bom := BomTable{
		Items: BomItems{
			{Quantity: decimal.NewFromInt(2), ResolvedUnitCost: decimal.RequireFromString("10")},
			{Quantity: decimal.NewFromInt(1), ResolvedUnitCost: decimal.RequireFromString("4"), IsTaxed: true},
		},
	}
	// 20 + (4 + 0.2)
	if got := bom.ComputeCost(); got.String() != "24.2" {
		t.Fatalf("expected 24.2, got %s", got.String())
	}
}

func TestBomTable_ComputeCostEmptyItems(t *testing.T) {
	var bom BomTable
	if got := bom.ComputeCost(); !got.IsZero() {
		t.Fatalf("expected zero for empty items, got %s", got.String())
	}
}
