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

// CombinationProduct is one (BOM, quantity) pair inside a bundle.
type CombinationProduct struct {
	BomTableId string          `json:"bom_table_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

type CombinationProducts []CombinationProduct

func (products CombinationProducts) Value() (driver.Value, error) {
	if products == nil {
		products = CombinationProducts{}
	}
	return json.Marshal(products)
}

func (products *CombinationProducts) Scan(value interface{}) error {
	if value == nil {
		*products = CombinationProducts{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CombinationProducts", value)
	}
	return json.Unmarshal(data, products)
}

// CustomCombination is a virtual product assembled from quantities of other
// BOM products. Its volume and cost are never stored; they are derived from
// the current component records at read time.
type CustomCombination struct {
	ID          string              `gorm:"primaryKey;size:36" json:"id"`
	Name        string              `gorm:"size:255;not null" json:"name" binding:"required"`
	ProductCode string              `gorm:"size:50;index" json:"product_code"`
	Products    CombinationProducts `gorm:"type:json" json:"products"`
	CreatedAt   time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy   string              `gorm:"size:100" json:"created_by"`
	UpdatedBy   string              `gorm:"size:100" json:"updated_by"`
}

func (CustomCombination) TableName() string {
	return "custom_combinations"
}

type NewCustomCombination struct {
	Name        string              `json:"name" binding:"required"`
	ProductCode string              `json:"product_code"`
	Products    CombinationProducts `json:"products"`
}

// CombinationComponent is one resolved component of a bundle with its
// contribution to the bundle's volume and cost.
type CombinationComponent struct {
	BomTableId  string          `json:"bom_table_id"`
	ProductCode string          `json:"product_code"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitVolume  decimal.Decimal `json:"unit_volume"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalVolume decimal.Decimal `json:"total_volume"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}

// ResolvedCombination carries the derived volume, cost and component
// breakdown alongside the stored record.
type ResolvedCombination struct {
	CustomCombination
	Volume     decimal.Decimal        `json:"volume"`
	Cost       decimal.Decimal        `json:"cost"`
	Components []CombinationComponent `json:"components"`
}

// ResolveCombination derives volume/cost against already-resolved BOM
// records keyed by id. A component whose BOM record is gone contributes
// zero and is kept in the breakdown.
func ResolveCombination(combo *CustomCombination, bomById map[string]*BomTable) *ResolvedCombination {
	result := &ResolvedCombination{
		CustomCombination: *combo,
		Volume:            decimal.Zero,
		Cost:              decimal.Zero,
		Components:        make([]CombinationComponent, 0, len(combo.Products)),
	}
	for _, product := range combo.Products {
		component := CombinationComponent{
			BomTableId: product.BomTableId,
			Quantity:   product.Quantity,
		}
		if bom, ok := bomById[product.BomTableId]; ok {
			component.ProductCode = bom.ProductCode
			component.Name = bom.TableName
			component.UnitVolume = bom.Volume
			component.UnitCost = bom.ComputeCost()
		}
		component.TotalVolume = component.UnitVolume.Mul(product.Quantity)
		component.TotalCost = component.UnitCost.Mul(product.Quantity)
		result.Volume = result.Volume.Add(component.TotalVolume)
		result.Cost = result.Cost.Add(component.TotalCost)
		result.Components = append(result.Components, component)
	}
	return result
}

func ListCustomCombinations(ctx context.Context) ([]*CustomCombination, error) {
	db := config.GetDB()
	var results []*CustomCombination
	if err := db.WithContext(ctx).Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetCustomCombination(ctx context.Context, id string) (*CustomCombination, error) {
	db := config.GetDB()
	var result CustomCombination
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateCustomCombination(ctx context.Context, input NewCustomCombination) (*CustomCombination, error) {
	userName, _ := utils.GetUserNameFromContext(ctx)

	combo := CustomCombination{
		ID:          uuid.NewString(),
		Name:        input.Name,
		ProductCode: input.ProductCode,
		Products:    input.Products,
		CreatedBy:   userName,
		UpdatedBy:   userName,
	}
	if combo.Products == nil {
		combo.Products = CombinationProducts{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&combo).Error; err != nil {
		return nil, err
	}
	return &combo, nil
}

func UpdateCustomCombination(ctx context.Context, id string, input NewCustomCombination) (*CustomCombination, error) {
	combo, err := GetCustomCombination(ctx, id)
	if err != nil {
		return nil, err
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	combo.Name = input.Name
	combo.ProductCode = input.ProductCode
	combo.Products = input.Products
	combo.UpdatedBy = userName
	if combo.Products == nil {
		combo.Products = CombinationProducts{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(combo).Error; err != nil {
		return nil, err
	}
	return combo, nil
}

func DeleteCustomCombination(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Delete(&CustomCombination{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
