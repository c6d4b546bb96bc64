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

// OtherCost is a free-form cost line in a cost-rate model.
type OtherCost struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	IncludeTax bool            `json:"include_tax"`
}

type OtherCosts []OtherCost

func (costs OtherCosts) Value() (driver.Value, error) {
	if costs == nil {
		costs = OtherCosts{}
	}
	return json.Marshal(costs)
}

func (costs *OtherCosts) Scan(value interface{}) error {
	if value == nil {
		*costs = OtherCosts{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into OtherCosts", value)
	}
	return json.Unmarshal(data, costs)
}

// TaxInclusions flags which named cost inputs carry the 5% tax.
type TaxInclusions struct {
	AverageOrderValue  bool `json:"average_order_value"`
	WarehouseLogistics bool `json:"warehouse_logistics"`
	CardboardBox       bool `json:"cardboard_box"`
	CreditCardFee      bool `json:"credit_card_fee"`
}

func (t TaxInclusions) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *TaxInclusions) Scan(value interface{}) error {
	if value == nil {
		*t = TaxInclusions{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into TaxInclusions", value)
	}
	return json.Unmarshal(data, t)
}

// CostRateScheme models the per-order cost rate for a given average order
// value. TotalCost and CostRate are derived on every write.
type CostRateScheme struct {
	ID                 string          `gorm:"primaryKey;size:36" json:"id"`
	Name               string          `gorm:"size:255" json:"name"`
	Note               string          `gorm:"type:text" json:"note"`
	AverageOrderValue  decimal.Decimal `gorm:"type:decimal(20,2)" json:"average_order_value"`
	WarehouseLogistics decimal.Decimal `gorm:"type:decimal(20,2)" json:"warehouse_logistics"`
	CardboardBox       decimal.Decimal `gorm:"type:decimal(20,2)" json:"cardboard_box"`
	CreditCardFee      decimal.Decimal `gorm:"type:decimal(20,2)" json:"credit_card_fee"`
	OtherCosts         OtherCosts      `gorm:"type:json" json:"other_costs"`
	TaxInclusions      TaxInclusions   `gorm:"type:json" json:"tax_inclusions"`
	TotalCost          decimal.Decimal `gorm:"type:decimal(20,2)" json:"total_cost"`
	CostRate           decimal.Decimal `gorm:"type:decimal(10,2)" json:"cost_rate"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy          string          `gorm:"size:100" json:"created_by"`
	UpdatedBy          string          `gorm:"size:100" json:"updated_by"`
}

type NewCostRateScheme struct {
	Name               string          `json:"name"`
	Note               string          `json:"note"`
	AverageOrderValue  decimal.Decimal `json:"average_order_value"`
	WarehouseLogistics decimal.Decimal `json:"warehouse_logistics"`
	CardboardBox       decimal.Decimal `json:"cardboard_box"`
	CreditCardFee      decimal.Decimal `json:"credit_card_fee"`
	OtherCosts         OtherCosts      `json:"other_costs"`
	TaxInclusions      TaxInclusions   `json:"tax_inclusions"`
}

// Compute derives TotalCost and CostRate. Named costs and free-form costs
// enter pre-tax; each flagged input contributes its 5% tax on top of the
// average-order tax, and flagged taxes are then backed out of the total.
func (scheme *CostRateScheme) Compute() {
	avgOrderTax := decimal.Zero
	if scheme.TaxInclusions.AverageOrderValue {
		avgOrderTax = scheme.AverageOrderValue.Mul(TaxRate)
	}

	flaggedTax := decimal.Zero
	if scheme.TaxInclusions.WarehouseLogistics {
		flaggedTax = flaggedTax.Add(scheme.WarehouseLogistics.Mul(TaxRate))
	}
	if scheme.TaxInclusions.CardboardBox {
		flaggedTax = flaggedTax.Add(scheme.CardboardBox.Mul(TaxRate))
	}
	if scheme.TaxInclusions.CreditCardFee {
		flaggedTax = flaggedTax.Add(scheme.CreditCardFee.Mul(TaxRate))
	}

	otherTotal := decimal.Zero
	otherTax := decimal.Zero
	for _, cost := range scheme.OtherCosts {
		otherTotal = otherTotal.Add(cost.Amount)
		if cost.IncludeTax {
			otherTax = otherTax.Add(cost.Amount.Mul(TaxRate))
		}
	}

	costs := scheme.WarehouseLogistics.
		Add(scheme.CardboardBox).
		Add(scheme.CreditCardFee).
		Add(otherTotal)

	scheme.TotalCost = avgOrderTax.Add(costs).Sub(flaggedTax).Sub(otherTax).Round(2)

	if scheme.AverageOrderValue.IsZero() {
		scheme.CostRate = decimal.Zero
		return
	}
	scheme.CostRate = scheme.TotalCost.Div(scheme.AverageOrderValue).Mul(oneHundred).Round(2)
}

func ListCostRateSchemes(ctx context.Context) ([]*CostRateScheme, error) {
	db := config.GetDB()
	var results []*CostRateScheme
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetCostRateScheme(ctx context.Context, id string) (*CostRateScheme, error) {
	db := config.GetDB()
	var result CostRateScheme
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateCostRateScheme(ctx context.Context, input NewCostRateScheme) (*CostRateScheme, error) {
	if input.AverageOrderValue.IsZero() {
		return nil, errors.New("average order value is required")
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	scheme := CostRateScheme{
		ID:                 uuid.NewString(),
		Name:               input.Name,
		Note:               input.Note,
		AverageOrderValue:  input.AverageOrderValue,
		WarehouseLogistics: input.WarehouseLogistics,
		CardboardBox:       input.CardboardBox,
		CreditCardFee:      input.CreditCardFee,
		OtherCosts:         input.OtherCosts,
		TaxInclusions:      input.TaxInclusions,
		CreatedBy:          userName,
		UpdatedBy:          userName,
	}
	if scheme.OtherCosts == nil {
		scheme.OtherCosts = OtherCosts{}
	}
	scheme.Compute()

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&scheme).Error; err != nil {
		return nil, err
	}
	return &scheme, nil
}

func UpdateCostRateScheme(ctx context.Context, id string, input NewCostRateScheme) (*CostRateScheme, error) {
	if input.AverageOrderValue.IsZero() {
		return nil, errors.New("average order value is required")
	}

	scheme, err := GetCostRateScheme(ctx, id)
	if err != nil {
		return nil, err
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	scheme.Name = input.Name
	scheme.Note = input.Note
	scheme.AverageOrderValue = input.AverageOrderValue
	scheme.WarehouseLogistics = input.WarehouseLogistics
	scheme.CardboardBox = input.CardboardBox
	scheme.CreditCardFee = input.CreditCardFee
	scheme.OtherCosts = input.OtherCosts
	scheme.TaxInclusions = input.TaxInclusions
	scheme.UpdatedBy = userName
	if scheme.OtherCosts == nil {
		scheme.OtherCosts = OtherCosts{}
	}
	scheme.Compute()

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(scheme).Error; err != nil {
		return nil, err
	}
	return scheme, nil
}

func DeleteCostRateScheme(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Delete(&CostRateScheme{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
