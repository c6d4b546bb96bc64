package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// PriceFromMargin derives a selling price from a target margin percentage,
// folding the logistics cost rate into the denominator:
// price = cost / (1 - margin/100 - logisticsRate/100).
// A denominator of zero or less has no meaningful price; zero is returned.
func PriceFromMargin(cost, margin, logisticsRate decimal.Decimal) decimal.Decimal {
	denominator := decimal.NewFromInt(1).
		Sub(margin.Div(oneHundred)).
		Sub(logisticsRate.Div(oneHundred))
	if denominator.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return cost.DivRound(denominator, 2)
}

// MarginFromPrice derives the margin percentage from an entered price.
// The logistics rate deliberately does not participate here.
func MarginFromPrice(price, cost decimal.Decimal) decimal.Decimal {
	if price.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price).Mul(oneHundred).Round(2)
}

// CostWithLogistics = cost × (1 + rate/100).
func CostWithLogistics(cost, logisticsRate decimal.Decimal) decimal.Decimal {
	return cost.Add(cost.Mul(logisticsRate.Div(oneHundred)))
}

// PricingRow is one BOM's snapshot inside a saved pricing scheme.
type PricingRow struct {
	BomTableId             string          `json:"bom_table_id"`
	TableName              string          `json:"table_name"`
	Category               string          `json:"category"`
	TotalCost              decimal.Decimal `json:"total_cost"`
	TotalCostWithLogistics decimal.Decimal `json:"total_cost_with_logistics"`
	WebsitePrice           decimal.Decimal `json:"website_price"`
	DealerPrice            decimal.Decimal `json:"dealer_price"`
	SpecialPrice           decimal.Decimal `json:"special_price"`
	BottomPrice            decimal.Decimal `json:"bottom_price"`
	DealerMargin           decimal.Decimal `json:"dealer_margin"`
	SpecialMargin          decimal.Decimal `json:"special_margin"`
	BottomMargin           decimal.Decimal `json:"bottom_margin"`
	LogisticsCostRate      decimal.Decimal `json:"logistics_cost_rate"`
}

type PricingRows []PricingRow

func (rows PricingRows) Value() (driver.Value, error) {
	if rows == nil {
		rows = PricingRows{}
	}
	return json.Marshal(rows)
}

func (rows *PricingRows) Scan(value interface{}) error {
	if value == nil {
		*rows = PricingRows{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PricingRows", value)
	}
	return json.Unmarshal(data, rows)
}

// PricingScheme is a named snapshot of a full dealer-pricing analysis.
type PricingScheme struct {
	ID        string      `gorm:"primaryKey;size:36" json:"id"`
	Name      string      `gorm:"size:255;not null" json:"name" binding:"required"`
	Note      string      `gorm:"type:text" json:"note"`
	Rows      PricingRows `gorm:"type:json" json:"rows"`
	CreatedAt time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy string      `gorm:"size:100" json:"created_by"`
	UpdatedBy string      `gorm:"size:100" json:"updated_by"`
}

type NewPricingScheme struct {
	Name string      `json:"name" binding:"required"`
	Note string      `json:"note"`
	Rows PricingRows `json:"rows"`
}

func ListPricingSchemes(ctx context.Context) ([]*PricingScheme, error) {
	db := config.GetDB()
	var results []*PricingScheme
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetPricingScheme(ctx context.Context, id string) (*PricingScheme, error) {
	db := config.GetDB()
	var result PricingScheme
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreatePricingScheme(ctx context.Context, input NewPricingScheme) (*PricingScheme, error) {
	userName, _ := utils.GetUserNameFromContext(ctx)

	scheme := PricingScheme{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Note:      input.Note,
		Rows:      input.Rows,
		CreatedBy: userName,
		UpdatedBy: userName,
	}
	if scheme.Rows == nil {
		scheme.Rows = PricingRows{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&scheme).Error; err != nil {
		return nil, err
	}
	return &scheme, nil
}

func UpdatePricingScheme(ctx context.Context, id string, input NewPricingScheme) (*PricingScheme, error) {
	scheme, err := GetPricingScheme(ctx, id)
	if err != nil {
		return nil, err
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	scheme.Name = input.Name
	scheme.Note = input.Note
	scheme.Rows = input.Rows
	scheme.UpdatedBy = userName
	if scheme.Rows == nil {
		scheme.Rows = PricingRows{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(scheme).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

func DeletePricingScheme(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Delete(&PricingScheme{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// PricingDefault carries the margin/price defaults to write back onto one
// BOM record after an analysis.
type PricingDefault struct {
	BomTableId        string          `json:"bom_table_id" binding:"required"`
	DealerMargin      decimal.Decimal `json:"dealer_margin"`
	SpecialMargin     decimal.Decimal `json:"special_margin"`
	BottomMargin      decimal.Decimal `json:"bottom_margin"`
	DealerPrice       decimal.Decimal `json:"dealer_price"`
	SpecialPrice      decimal.Decimal `json:"special_price"`
	BottomPrice       decimal.Decimal `json:"bottom_price"`
	LogisticsCostRate decimal.Decimal `json:"logistics_cost_rate"`
	WebsitePrice      decimal.Decimal `json:"website_price"`
}

// SavePricingDefaults writes analysis results back onto the BOM records so
// the next analysis starts from them.
func SavePricingDefaults(ctx context.Context, defaults []PricingDefault) error {
	userName, _ := utils.GetUserNameFromContext(ctx)

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defaults {
			result := tx.Model(&BomTable{}).
				Where("id = ?", def.BomTableId).
				Updates(map[string]interface{}{
					"dealer_margin":       def.DealerMargin,
					"special_margin":      def.SpecialMargin,
					"bottom_margin":       def.BottomMargin,
					"dealer_price":        def.DealerPrice,
					"special_price":       def.SpecialPrice,
					"bottom_price":        def.BottomPrice,
					"logistics_cost_rate": def.LogisticsCostRate,
					"website_price":       def.WebsitePrice,
					"updated_by":          userName,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("bom table %s: %w", def.BomTableId, utils.ErrorRecordNotFound)
			}
		}
		return nil
	})
}
