package shipping

import (
	"github.com/shopspring/decimal"

	"bitbucket.org/lfkitchen/costing_backend/models"
)

// MatchOrders resolves every order row against the BOM catalog first, then
// the custom combinations; the first product-code match wins, in catalog
// order. Unmatched rows are kept with zero volume and cost so one unknown
// SKU never drops the rest of its order.
func MatchOrders(catalog *models.Catalog, rows []OrderRow) []MatchedOrderRow {
	matched := make([]MatchedOrderRow, 0, len(rows))
	for _, row := range rows {
		matched = append(matched, matchRow(catalog, row))
	}
	return matched
}

func matchRow(catalog *models.Catalog, row OrderRow) MatchedOrderRow {
	result := MatchedOrderRow{
		OrderRow:    row,
		MatchSource: MatchSourceNone,
		MatchedName: unmatchedProductName,
		UnitVolume:  decimal.Zero,
		TotalVolume: decimal.Zero,
		UnitCost:    decimal.Zero,
		TotalCost:   decimal.Zero,
	}
	quantity := decimal.NewFromInt(int64(row.Quantity))

	for _, bom := range catalog.Boms {
		if bom.ProductCode != row.Sku {
			continue
		}
		result.MatchSource = MatchSourceBom
		result.Matched = true
		result.MatchedName = bom.TableName
		result.UnitVolume = bom.Volume
		result.UnitCost = bom.ComputeCost()
		result.TotalVolume = result.UnitVolume.Mul(quantity)
		result.TotalCost = result.UnitCost.Mul(quantity)
		return result
	}

	for _, combo := range catalog.Combinations {
		if combo.ProductCode != row.Sku {
			continue
		}
		result.MatchSource = MatchSourceCustom
		result.Matched = true
		result.MatchedName = combo.Name
		result.UnitVolume = combo.Volume
		result.UnitCost = combo.Cost
		result.TotalVolume = result.UnitVolume.Mul(quantity)
		result.TotalCost = result.UnitCost.Mul(quantity)
		result.Components = expandComponents(combo, quantity)
		return result
	}

	return result
}

// expandComponents scales each bundle component by the ordered quantity.
func expandComponents(combo *models.ResolvedCombination, orderQuantity decimal.Decimal) []ComponentLine {
	lines := make([]ComponentLine, 0, len(combo.Components))
	for _, component := range combo.Components {
		lines = append(lines, ComponentLine{
			Sku:           component.ProductCode,
			Name:          component.Name,
			Quantity:      component.Quantity,
			UnitVolume:    component.UnitVolume,
			UnitCost:      component.UnitCost,
			TotalQuantity: component.Quantity.Mul(orderQuantity),
			TotalVolume:   component.UnitVolume.Mul(component.Quantity).Mul(orderQuantity),
			TotalCost:     component.UnitCost.Mul(component.Quantity).Mul(orderQuantity),
		})
	}
	return lines
}
