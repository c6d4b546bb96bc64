package shipping

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"bitbucket.org/lfkitchen/costing_backend/utils"
	"github.com/xuri/excelize/v2"
)

// column positions used when a header name cannot be matched
const (
	colOrderNumber = iota
	colCustomerName
	colAddress
	colPhone
	colSku
	colQuantity
	colProductName
)

// headerCandidates maps each semantic column to the header names seen in the
// wild. Matching is exact on the trimmed header cell.
var headerCandidates = map[int][]string{
	colOrderNumber:  {"訂單編號", "order_number"},
	colCustomerName: {"收件人名稱", "customer_name"},
	colAddress:      {"收件人地址", "address"},
	colPhone:        {"收件人電話", "phone"},
	colSku:          {"SKU", "sku", "商品編號"},
	colQuantity:     {"數量", "quantity"},
	colProductName:  {"商品名稱", "product_name"},
}

// resolveColumns maps semantic columns to sheet indexes from the header row,
// falling back to the conventional position when no header matches.
func resolveColumns(header []string) map[int]int {
	columns := make(map[int]int, len(headerCandidates))
	for semantic, names := range headerCandidates {
		columns[semantic] = semantic // positional fallback
		for i, cell := range header {
			if matchesHeader(cell, names) {
				columns[semantic] = i
				break
			}
		}
	}
	return columns
}

func matchesHeader(cell string, names []string) bool {
	cell = strings.TrimSpace(cell)
	for _, name := range names {
		if cell == name {
			return true
		}
	}
	return false
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func cellOrUnknown(row []string, index int) string {
	if v := cellAt(row, index); v != "" {
		return v
	}
	return unknownField
}

// SplitSkuToken splits a `CODE*N` token into the base SKU and the star
// multiplier. Anything that is not exactly two parts with an integer suffix
// keeps the whole token and multiplier 1. The multiplier is a packing
// convention in the source spreadsheets: `SKU001*5` is five units of SKU001
// on one order line.
func SplitSkuToken(token string) (baseSku string, starQuantity int) {
	baseSku = token
	starQuantity = 1
	if !strings.Contains(token, "*") {
		return
	}
	parts := strings.Split(token, "*")
	if len(parts) != 2 {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return
	}
	baseSku = strings.TrimSpace(parts[0])
	starQuantity = n
	return
}

// ParseOrders reads order rows from the first sheet of an xlsx upload.
// The header row is skipped; rows where every cell is empty are dropped.
// Unparseable quantities default to 1, so a bad cell never loses the row.
func ParseOrders(r io.Reader) ([]OrderRow, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.New("cannot read spreadsheet file")
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("spreadsheet is empty")
	}

	columns := resolveColumns(rows[0])

	var orders []OrderRow
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}

		rawSku := cellOrUnknown(row, columns[colSku])
		baseSku, starQuantity := SplitSkuToken(rawSku)

		orderQuantity := 1
		if qty := cellAt(row, columns[colQuantity]); qty != "" {
			if n, err := strconv.Atoi(qty); err == nil {
				orderQuantity = n
			}
		}

		orders = append(orders, OrderRow{
			OrderNumber:   cellOrUnknown(row, columns[colOrderNumber]),
			CustomerName:  cellOrUnknown(row, columns[colCustomerName]),
			Address:       cellOrUnknown(row, columns[colAddress]),
			Phone:         utils.NormalizePhone(cellOrUnknown(row, columns[colPhone])),
			Sku:           baseSku,
			ProductName:   cellOrUnknown(row, columns[colProductName]),
			OrderQuantity: orderQuantity,
			StarQuantity:  starQuantity,
			Quantity:      orderQuantity * starQuantity,
		})
	}
	return orders, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
