package shipping

import (
	"testing"

	"github.com/shopspring/decimal"

	"bitbucket.org/lfkitchen/costing_backend/models"
)

func testCatalogBom(id, code, name, volume, unitCost string) *models.BomTable {
	return &models.BomTable{
		ID:          id,
		ProductCode: code,
		TableName:   name,
		Volume:      decimal.RequireFromString(volume),
		Items: models.BomItems{
			{Quantity: decimal.NewFromInt(1), ResolvedUnitCost: decimal.RequireFromString(unitCost)},
		},
	}
}

func testCatalog() *models.Catalog {
	bom1 := testCatalogBom("bom-1", "SS001", "玉米濃湯", "2.5", "30")
	bom2 := testCatalogBom("bom-2", "SS002", "南瓜濃湯", "3", "45")
	bomById := map[string]*models.BomTable{"bom-1": bom1, "bom-2": bom2}

	combo := &models.CustomCombination{
		ID:          "combo-1",
		Name:        "濃湯雙件組",
		ProductCode: "CB001",
		Products: models.CombinationProducts{
			{BomTableId: "bom-1", Quantity: decimal.NewFromInt(2)},
			{BomTableId: "bom-2", Quantity: decimal.NewFromInt(1)},
		},
	}

	return &models.Catalog{
		Boms:         []*models.BomTable{bom1, bom2},
		Combinations: []*models.ResolvedCombination{models.ResolveCombination(combo, bomById)},
	}
}

func TestMatchOrders_BomMatch(t *testing.T) {
	catalog := testCatalog()
	rows := []OrderRow{{OrderNumber: "A001", Sku: "SS001", Quantity: 3}}

	matched := MatchOrders(catalog, rows)
	if len(matched) != 1 {
		t.Fatalf("expected 1 row, got %d", len(matched))
	}
	row := matched[0]
	if row.MatchSource != MatchSourceBom || !row.Matched {
		t.Fatalf("expected bom match, got %+v", row)
	}
	if row.MatchedName != "玉米濃湯" {
		t.Fatalf("expected matched name 玉米濃湯, got %q", row.MatchedName)
	}
	if row.TotalVolume.String() != "7.5" {
		t.Fatalf("expected total volume 7.5, got %s", row.TotalVolume.String())
	}
	if row.TotalCost.String() != "90" {
		t.Fatalf("expected total cost 90, got %s", row.TotalCost.String())
	}
}

func TestMatchOrders_CombinationMatch(t *testing.T) {
	catalog := testCatalog()
	rows := []OrderRow{{OrderNumber: "A001", Sku: "CB001", Quantity: 2}}

	row := MatchOrders(catalog, rows)[0]
	if row.MatchSource != MatchSourceCustom {
		t.Fatalf("expected custom match, got %s", row.MatchSource)
	}
	// bundle: 2x bom-1 (2.5, 30) + 1x bom-2 (3, 45) = volume 8, cost 105
	if row.UnitVolume.String() != "8" || row.UnitCost.String() != "105" {
		t.Fatalf("unexpected bundle unit figures: volume %s cost %s",
			row.UnitVolume.String(), row.UnitCost.String())
	}
	if row.TotalCost.String() != "210" {
		t.Fatalf("expected total cost 210, got %s", row.TotalCost.String())
	}
	if len(row.Components) != 2 {
		t.Fatalf("expected 2 component lines, got %d", len(row.Components))
	}
	first := row.Components[0]
	if first.Sku != "SS001" || first.TotalQuantity.String() != "4" {
		t.Fatalf("unexpected first component: %+v", first)
	}
	if first.TotalCost.String() != "120" {
		t.Fatalf("expected component cost 2*2*30=120, got %s", first.TotalCost.String())
	}
}

func TestMatchOrders_BomWinsOverCombination(t *testing.T) {
	catalog := testCatalog()
	// give the combination the same product code as a BOM record
	catalog.Combinations[0].ProductCode = "SS001"

	row := MatchOrders(catalog, []OrderRow{{Sku: "SS001", Quantity: 1}})[0]
	if row.MatchSource != MatchSourceBom {
		t.Fatalf("expected the BOM catalog to win, got %s", row.MatchSource)
	}
}

func TestMatchOrders_UnmatchedRowKept(t *testing.T) {
	catalog := testCatalog()
	rows := []OrderRow{
		{OrderNumber: "A001", Sku: "SS001", Quantity: 1},
		{OrderNumber: "A001", Sku: "NOPE", Quantity: 2},
	}

	matched := MatchOrders(catalog, rows)
	if len(matched) != 2 {
		t.Fatalf("expected both rows kept, got %d", len(matched))
	}
	row := matched[1]
	if row.Matched || row.MatchSource != MatchSourceNone {
		t.Fatalf("expected unmatched row, got %+v", row)
	}
	if row.MatchedName != "未找到匹配的商品" {
		t.Fatalf("unexpected unmatched name %q", row.MatchedName)
	}
	if !row.TotalVolume.IsZero() || !row.TotalCost.IsZero() {
		t.Fatalf("expected zero volume and cost for unmatched row, got %+v", row)
	}
}
