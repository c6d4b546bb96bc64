package shipping

import (
	"github.com/shopspring/decimal"
)

// MatchSource records which catalog an order row resolved against.
type MatchSource string

const (
	MatchSourceBom    MatchSource = "bom"
	MatchSourceCustom MatchSource = "custom"
	MatchSourceNone   MatchSource = "none"
)

// BoxType is one of the two carton classes.
type BoxType string

const (
	BoxTypeS60 BoxType = "S60"
	BoxTypeS90 BoxType = "S90"
)

// boxVolumeThreshold is the S60/S90 cutoff, inclusive on the low side.
var boxVolumeThreshold = decimal.NewFromInt(14)

// ClassifyBox picks the carton class for an order's total volume.
func ClassifyBox(totalVolume decimal.Decimal) BoxType {
	if totalVolume.LessThanOrEqual(boxVolumeThreshold) {
		return BoxTypeS60
	}
	return BoxTypeS90
}

const unknownField = "未知"
const unmatchedProductName = "未找到匹配的商品"

// OrderRow is one parsed spreadsheet line. Quantity is the effective
// quantity: the sheet quantity times the star multiplier from the SKU token.
type OrderRow struct {
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Sku           string `json:"sku"`
	ProductName   string `json:"product_name"`
	OrderQuantity int    `json:"order_quantity"`
	StarQuantity  int    `json:"star_quantity"`
	Quantity      int    `json:"quantity"`
}

// ComponentLine is one BOM component's contribution when a bundle is ordered.
type ComponentLine struct {
	Sku           string          `json:"sku"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitVolume    decimal.Decimal `json:"unit_volume"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalVolume   decimal.Decimal `json:"total_volume"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// MatchedOrderRow is an OrderRow after catalog resolution.
type MatchedOrderRow struct {
	OrderRow
	MatchSource MatchSource     `json:"match_source"`
	Matched     bool            `json:"matched"`
	MatchedName string          `json:"matched_name"`
	UnitVolume  decimal.Decimal `json:"unit_volume"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	Components  []ComponentLine `json:"components,omitempty"`
}

// GroupedOrder collects all rows of one order number with its totals and
// carton class.
type GroupedOrder struct {
	OrderNumber  string            `json:"order_number"`
	CustomerName string            `json:"customer_name"`
	Address      string            `json:"address"`
	Phone        string            `json:"phone"`
	Items        []MatchedOrderRow `json:"items"`
	TotalVolume  decimal.Decimal   `json:"total_volume"`
	TotalCost    decimal.Decimal   `json:"total_cost"`
	BoxType      BoxType           `json:"box_type"`
}

// Summary is the batch-level rollup returned with every calculation.
type Summary struct {
	S60Count         int             `json:"s60_count"`
	S90Count         int             `json:"s90_count"`
	UnmatchedSkus    []string        `json:"unmatched_skus"`
	BomMatchCount    int             `json:"bom_match_count"`
	CustomMatchCount int             `json:"custom_match_count"`
	TotalOrdersCost  decimal.Decimal `json:"total_orders_cost"`
}

// SkuStat is the per-SKU demand aggregate. DirectCount counts units ordered
// by the SKU itself; ComponentCount counts units consumed through bundles.
type SkuStat struct {
	Sku            string          `json:"sku"`
	Name           string          `json:"name"`
	DirectCount    decimal.Decimal `json:"direct_count"`
	ComponentCount decimal.Decimal `json:"component_count"`
	TotalCount     decimal.Decimal `json:"total_count"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Matched        bool            `json:"matched"`
	MatchSource    MatchSource     `json:"match_source"`
	Components     []ComponentLine `json:"components,omitempty"`
}

// Result is the full output of one calculation run.
type Result struct {
	Orders   []MatchedOrderRow `json:"orders"`
	Groups   []GroupedOrder    `json:"groups"`
	Summary  Summary           `json:"summary"`
	SkuStats []SkuStat         `json:"sku_stats"`
}
