package shipping

import (
	"testing"
)

func TestReduceSkuStats_DualAccumulation(t *testing.T) {
	catalog := testCatalog()
	rows := MatchOrders(catalog, []OrderRow{
		{OrderNumber: "A001", Sku: "SS001", Quantity: 3},
		{OrderNumber: "A002", Sku: "CB001", Quantity: 2},
	})

	stats := ReduceSkuStats(catalog, rows)
	if len(stats) != 3 {
		t.Fatalf("expected 3 stats (SS001, CB001, SS002), got %d", len(stats))
	}

	byId := make(map[string]SkuStat, len(stats))
	for _, stat := range stats {
		byId[stat.Sku] = stat
	}

	// SS001: 3 direct + 2 per bundle x 2 bundles as component
	ss001 := byId["SS001"]
	if ss001.DirectCount.String() != "3" || ss001.ComponentCount.String() != "4" {
		t.Fatalf("unexpected SS001 counts: %+v", ss001)
	}
	if ss001.TotalCount.String() != "7" {
		t.Fatalf("expected SS001 total 7, got %s", ss001.TotalCount.String())
	}
	if ss001.TotalCost.String() != "210" {
		t.Fatalf("expected SS001 cost 7*30=210, got %s", ss001.TotalCost.String())
	}
	if ss001.MatchSource != MatchSourceBom {
		t.Fatalf("expected SS001 bom source, got %s", ss001.MatchSource)
	}

	// CB001: the bundle itself, ordered directly
	cb001 := byId["CB001"]
	if cb001.DirectCount.String() != "2" || !cb001.ComponentCount.IsZero() {
		t.Fatalf("unexpected CB001 counts: %+v", cb001)
	}
	if cb001.MatchSource != MatchSourceCustom {
		t.Fatalf("expected CB001 custom source, got %s", cb001.MatchSource)
	}
	if cb001.TotalCost.String() != "210" {
		t.Fatalf("expected CB001 cost 2*105=210, got %s", cb001.TotalCost.String())
	}
	if len(cb001.Components) != 2 {
		t.Fatalf("expected CB001 stat to carry its breakdown, got %d", len(cb001.Components))
	}

	// SS002: never ordered directly, consumed only through bundles
	ss002 := byId["SS002"]
	if !ss002.DirectCount.IsZero() || ss002.ComponentCount.String() != "2" {
		t.Fatalf("unexpected SS002 counts: %+v", ss002)
	}
	if ss002.Name != "南瓜濃湯" || !ss002.Matched {
		t.Fatalf("expected SS002 resolved from its component line, got %+v", ss002)
	}
	if ss002.TotalCost.String() != "90" {
		t.Fatalf("expected SS002 cost 2*45=90, got %s", ss002.TotalCost.String())
	}

	// descending by total count
	if stats[0].Sku != "SS001" {
		t.Fatalf("expected SS001 first, got %s", stats[0].Sku)
	}
}

func TestReduceSkuStats_UnmatchedSku(t *testing.T) {
	catalog := testCatalog()
	rows := MatchOrders(catalog, []OrderRow{
		{OrderNumber: "A001", Sku: "NOPE", Quantity: 2},
	})

	stats := ReduceSkuStats(catalog, rows)
	if len(stats) != 1 {
		t.Fatalf("expected 1 stat, got %d", len(stats))
	}
	stat := stats[0]
	if stat.Matched || stat.MatchSource != MatchSourceNone {
		t.Fatalf("expected unmatched stat, got %+v", stat)
	}
	if stat.Name != "未找到匹配的商品" {
		t.Fatalf("unexpected unmatched name %q", stat.Name)
	}
	if stat.DirectCount.String() != "2" || !stat.TotalCost.IsZero() {
		t.Fatalf("unexpected unmatched figures: %+v", stat)
	}
}

func TestReduceSkuStats_Empty(t *testing.T) {
	stats := ReduceSkuStats(testCatalog(), nil)
	if len(stats) != 0 {
		t.Fatalf("expected no stats, got %d", len(stats))
	}
}
