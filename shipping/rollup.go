package shipping

import (
	"sort"

	"github.com/shopspring/decimal"
)

// GroupOrders folds matched rows into per-order groups with summed volume
// and cost, classifies each group's carton, and builds the batch summary.
// Groups come back sorted by order number.
func GroupOrders(rows []MatchedOrderRow) ([]GroupedOrder, Summary) {
	groupsByNumber := make(map[string]*GroupedOrder)
	var order []string

	summary := Summary{
		UnmatchedSkus:   []string{},
		TotalOrdersCost: decimal.Zero,
	}
	seenUnmatched := make(map[string]bool)

	for _, row := range rows {
		group, ok := groupsByNumber[row.OrderNumber]
		if !ok {
			group = &GroupedOrder{
				OrderNumber:  row.OrderNumber,
				CustomerName: row.CustomerName,
				Address:      row.Address,
				Phone:        row.Phone,
				TotalVolume:  decimal.Zero,
				TotalCost:    decimal.Zero,
			}
			groupsByNumber[row.OrderNumber] = group
			order = append(order, row.OrderNumber)
		}
		group.Items = append(group.Items, row)
		group.TotalVolume = group.TotalVolume.Add(row.TotalVolume)
		group.TotalCost = group.TotalCost.Add(row.TotalCost)
		group.BoxType = ClassifyBox(group.TotalVolume)

		switch row.MatchSource {
		case MatchSourceBom:
			summary.BomMatchCount++
		case MatchSourceCustom:
			summary.CustomMatchCount++
		default:
			if !seenUnmatched[row.Sku] {
				seenUnmatched[row.Sku] = true
				summary.UnmatchedSkus = append(summary.UnmatchedSkus, row.Sku)
			}
		}
	}

	sort.Strings(order)
	groups := make([]GroupedOrder, 0, len(order))
	for _, orderNumber := range order {
		group := groupsByNumber[orderNumber]
		switch group.BoxType {
		case BoxTypeS60:
			summary.S60Count++
		case BoxTypeS90:
			summary.S90Count++
		}
		summary.TotalOrdersCost = summary.TotalOrdersCost.Add(group.TotalCost)
		groups = append(groups, *group)
	}

	return groups, summary
}
