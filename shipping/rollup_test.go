package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
)

func matchedRow(orderNumber, sku string, source MatchSource, volume, cost string) MatchedOrderRow {
	return MatchedOrderRow{
		OrderRow:    OrderRow{OrderNumber: orderNumber, Sku: sku, Quantity: 1},
		MatchSource: source,
		Matched:     source != MatchSourceNone,
		TotalVolume: decimal.RequireFromString(volume),
		TotalCost:   decimal.RequireFromString(cost),
	}
}

func TestClassifyBox(t *testing.T) {
	cases := []struct {
		volume   string
		expected BoxType
	}{
		{"0", BoxTypeS60},
		{"13.99", BoxTypeS60},
		{"14", BoxTypeS60},
		{"14.01", BoxTypeS90},
		{"100", BoxTypeS90},
	}
	for _, tc := range cases {
		if got := ClassifyBox(decimal.RequireFromString(tc.volume)); got != tc.expected {
			t.Fatalf("ClassifyBox(%s) expected %s, got %s", tc.volume, tc.expected, got)
		}
	}
}

func TestGroupOrders(t *testing.T) {
	rows := []MatchedOrderRow{
		matchedRow("A002", "SS001", MatchSourceBom, "10", "100"),
		matchedRow("A001", "SS002", MatchSourceBom, "8", "80"),
		matchedRow("A002", "CB001", MatchSourceCustom, "6", "60"),
	}

	groups, summary := GroupOrders(rows)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// groups sorted by order number
	if groups[0].OrderNumber != "A001" || groups[1].OrderNumber != "A002" {
		t.Fatalf("unexpected group order: %s, %s", groups[0].OrderNumber, groups[1].OrderNumber)
	}

	a002 := groups[1]
	if len(a002.Items) != 2 {
		t.Fatalf("expected 2 items in A002, got %d", len(a002.Items))
	}
	if a002.TotalVolume.String() != "16" || a002.TotalCost.String() != "160" {
		t.Fatalf("unexpected A002 totals: volume %s cost %s",
			a002.TotalVolume.String(), a002.TotalCost.String())
	}
	if a002.BoxType != BoxTypeS90 {
		t.Fatalf("expected S90 for volume 16, got %s", a002.BoxType)
	}
	if groups[0].BoxType != BoxTypeS60 {
		t.Fatalf("expected S60 for volume 8, got %s", groups[0].BoxType)
	}

	if summary.S60Count != 1 || summary.S90Count != 1 {
		t.Fatalf("unexpected box counts: %+v", summary)
	}
	if summary.BomMatchCount != 2 || summary.CustomMatchCount != 1 {
		t.Fatalf("unexpected match counts: %+v", summary)
	}
	if summary.TotalOrdersCost.String() != "240" {
		t.Fatalf("expected total orders cost 240, got %s", summary.TotalOrdersCost.String())
	}
	if len(summary.UnmatchedSkus) != 0 {
		t.Fatalf("expected no unmatched skus, got %v", summary.UnmatchedSkus)
	}
}

func TestGroupOrders_UnmatchedSkusDeduplicated(t *testing.T) {
	rows := []MatchedOrderRow{
		matchedRow("A001", "NOPE", MatchSourceNone, "0", "0"),
		matchedRow("A002", "NOPE", MatchSourceNone, "0", "0"),
		matchedRow("A002", "GONE", MatchSourceNone, "0", "0"),
		matchedRow("A002", "SS001", MatchSourceBom, "5", "50"),
	}

	groups, summary := GroupOrders(rows)
	if len(summary.UnmatchedSkus) != 2 {
		t.Fatalf("expected 2 unique unmatched skus, got %v", summary.UnmatchedSkus)
	}
	// unmatched rows stay inside their group
	if len(groups[1].Items) != 3 {
		t.Fatalf("expected unmatched rows kept in A002, got %d items", len(groups[1].Items))
	}
	if groups[1].TotalCost.String() != "50" {
		t.Fatalf("expected unmatched rows to cost nothing, total %s", groups[1].TotalCost.String())
	}
}

func TestGroupOrders_Empty(t *testing.T) {
	groups, summary := GroupOrders(nil)
	if len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
	if summary.S60Count != 0 || summary.S90Count != 0 || !summary.TotalOrdersCost.IsZero() {
		t.Fatalf("unexpected summary for empty input: %+v", summary)
	}
}
