package shipping

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestSplitSkuToken(t *testing.T) {
	cases := []struct {
		token    string
		wantSku  string
		wantStar int
	}{
		{"SS005", "SS005", 1},
		{"SS005*5", "SS005", 5},
		{"SS005 * 3", "SS005", 3},
		{"SS005*", "SS005*", 1},
		{"SS005*abc", "SS005*abc", 1},
		{"SS*005*5", "SS*005*5", 1},
		{"*5", "", 5},
	}
	for _, tc := range cases {
		sku, star := SplitSkuToken(tc.token)
		if sku != tc.wantSku || star != tc.wantStar {
			t.Fatalf("SplitSkuToken(%q) = (%q, %d), expected (%q, %d)",
				tc.token, sku, star, tc.wantSku, tc.wantStar)
		}
	}
}

func TestResolveColumns_HeaderMatch(t *testing.T) {
	// quantity and sku swapped relative to the conventional layout
	header := []string{"訂單編號", "收件人名稱", "收件人地址", "收件人電話", "數量", "SKU", "商品名稱"}
	columns := resolveColumns(header)
	if columns[colQuantity] != 4 {
		t.Fatalf("expected quantity column 4, got %d", columns[colQuantity])
	}
	if columns[colSku] != 5 {
		t.Fatalf("expected sku column 5, got %d", columns[colSku])
	}
}

func TestResolveColumns_PositionalFallback(t *testing.T) {
	header := []string{"A", "B", "C", "D", "E", "F", "G"}
	columns := resolveColumns(header)
	for semantic := colOrderNumber; semantic <= colProductName; semantic++ {
		if columns[semantic] != semantic {
			t.Fatalf("expected positional fallback %d for column %d, got %d",
				semantic, semantic, columns[semantic])
		}
	}
}

func buildTestSheet(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name error: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow error: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer error: %v", err)
	}
	return buf
}

func TestParseOrders(t *testing.T) {
	buf := buildTestSheet(t, [][]interface{}{
		{"訂單編號", "收件人名稱", "收件人地址", "收件人電話", "SKU", "數量", "商品名稱"},
		{"A001", "陳小姐", "台北市信義區", "0912345678", "SS005*5", "2", "玉米濃湯"},
		{"", "", "", "", "", "", ""},
		{"A002", "", "", "", "SS001", "bad", ""},
	})

	orders, err := ParseOrders(buf)
	if err != nil {
		t.Fatalf("ParseOrders error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	first := orders[0]
	if first.OrderNumber != "A001" || first.Sku != "SS005" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.OrderQuantity != 2 || first.StarQuantity != 5 || first.Quantity != 10 {
		t.Fatalf("expected quantity 2*5=10, got %+v", first)
	}
	if first.Phone != "+886912345678" {
		t.Fatalf("expected normalized phone, got %q", first.Phone)
	}

	second := orders[1]
	if second.CustomerName != "未知" || second.ProductName != "未知" {
		t.Fatalf("expected unknown placeholders, got %+v", second)
	}
	if second.Quantity != 1 {
		t.Fatalf("expected unparseable quantity to default to 1, got %d", second.Quantity)
	}
}

func TestParseOrders_RejectsGarbage(t *testing.T) {
	if _, err := ParseOrders(bytes.NewReader([]byte("not a spreadsheet"))); err == nil {
		t.Fatal("expected error for non-xlsx input")
	}
}
