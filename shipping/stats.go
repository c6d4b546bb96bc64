package shipping

import (
	"sort"

	"github.com/shopspring/decimal"

	"bitbucket.org/lfkitchen/costing_backend/models"
)

// ReduceSkuStats aggregates demand per SKU across all matched rows with two
// accumulators: direct units ordered under the SKU itself, and units
// consumed indirectly as bundle components. A SKU can appear in both, and a
// component-only SKU is still emitted with a zero direct count. Output is
// sorted descending by total count.
func ReduceSkuStats(catalog *models.Catalog, rows []MatchedOrderRow) []SkuStat {
	directCount := make(map[string]decimal.Decimal)
	componentCount := make(map[string]decimal.Decimal)
	directUnitCost := make(map[string]decimal.Decimal)
	componentUnitCost := make(map[string]decimal.Decimal)
	componentName := make(map[string]string)
	var order []string

	for _, row := range rows {
		quantity := decimal.NewFromInt(int64(row.Quantity))
		if _, ok := directCount[row.Sku]; !ok {
			order = append(order, row.Sku)
			directCount[row.Sku] = decimal.Zero
		}
		directCount[row.Sku] = directCount[row.Sku].Add(quantity)
		directUnitCost[row.Sku] = row.UnitCost

		if row.MatchSource != MatchSourceCustom {
			continue
		}
		for _, component := range row.Components {
			componentCount[component.Sku] = componentCount[component.Sku].Add(
				component.Quantity.Mul(quantity))
			componentUnitCost[component.Sku] = component.UnitCost
			componentName[component.Sku] = component.Name
		}
	}

	stats := make([]SkuStat, 0, len(directCount)+len(componentCount))
	for _, sku := range order {
		stat := SkuStat{
			Sku:            sku,
			Name:           unmatchedProductName,
			DirectCount:    directCount[sku],
			ComponentCount: componentCount[sku],
			UnitCost:       directUnitCost[sku],
			MatchSource:    MatchSourceNone,
		}
		stat.TotalCount = stat.DirectCount.Add(stat.ComponentCount)

		for _, bom := range catalog.Boms {
			if bom.ProductCode == sku {
				stat.Name = bom.TableName
				stat.Matched = true
				stat.MatchSource = MatchSourceBom
				break
			}
		}
		if !stat.Matched {
			for _, combo := range catalog.Combinations {
				if combo.ProductCode == sku {
					stat.Name = combo.Name
					stat.Matched = true
					stat.MatchSource = MatchSourceCustom
					stat.Components = expandComponents(combo, decimal.NewFromInt(1))
					break
				}
			}
		}

		stat.TotalCost = stat.DirectCount.Mul(stat.UnitCost).
			Add(stat.ComponentCount.Mul(componentUnitCost[sku]))
		stats = append(stats, stat)
	}

	// component-only SKUs: consumed through bundles, never ordered directly
	componentSkus := make([]string, 0, len(componentCount))
	for sku := range componentCount {
		if _, ordered := directCount[sku]; !ordered {
			componentSkus = append(componentSkus, sku)
		}
	}
	sort.Strings(componentSkus)
	for _, sku := range componentSkus {
		stat := SkuStat{
			Sku:            sku,
			Name:           componentName[sku],
			DirectCount:    decimal.Zero,
			ComponentCount: componentCount[sku],
			TotalCount:     componentCount[sku],
			UnitCost:       componentUnitCost[sku],
			TotalCost:      componentCount[sku].Mul(componentUnitCost[sku]),
			Matched:        true,
			MatchSource:    MatchSourceBom,
		}
		if stat.Name == "" {
			stat.Name = unmatchedProductName
			stat.Matched = false
			stat.MatchSource = MatchSourceNone
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalCount.GreaterThan(stats[j].TotalCount)
	})
	return stats
}
