package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SharedMaterial is a raw-material cost record referenced by many BOM line
// items; editing it here reprices every BOM that points at it.
type SharedMaterial struct {
	ID               string          `gorm:"primaryKey;size:36" json:"id"`
	Name             string          `gorm:"size:255;not null" json:"name" binding:"required"`
	PurchaseUnitCost decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"purchase_unit_cost"`
	ProductUnit      decimal.Decimal `gorm:"type:decimal(20,6);not null" json:"product_unit"`
	// UnitCost is derived from PurchaseUnitCost / ProductUnit at write time.
	UnitCost  decimal.Decimal `gorm:"type:decimal(20,2)" json:"unit_cost"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy string          `gorm:"size:100" json:"created_by"`
	UpdatedBy string          `gorm:"size:100" json:"updated_by"`
}

type NewSharedMaterial struct {
	Name             string `json:"name" binding:"required"`
	PurchaseUnitCost string `json:"purchase_unit_cost" binding:"required"`
	ProductUnit      string `json:"product_unit" binding:"required"`
}

// SharedMaterialHistory is the append-only change log, one row per
// create/update/delete, carrying both the new and the previous values.
type SharedMaterialHistory struct {
	ID         int                `gorm:"primary_key" json:"id"`
	MaterialId string             `gorm:"index;size:36;not null" json:"material_id"`
	ChangeType MaterialChangeType `gorm:"size:10;not null" json:"change_type"`

	Name             string          `gorm:"size:255" json:"name"`
	PurchaseUnitCost decimal.Decimal `gorm:"type:decimal(20,6)" json:"purchase_unit_cost"`
	ProductUnit      decimal.Decimal `gorm:"type:decimal(20,6)" json:"product_unit"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(20,2)" json:"unit_cost"`

	PreviousName             string          `gorm:"size:255" json:"previous_name"`
	PreviousPurchaseUnitCost decimal.Decimal `gorm:"type:decimal(20,6)" json:"previous_purchase_unit_cost"`
	PreviousProductUnit      decimal.Decimal `gorm:"type:decimal(20,6)" json:"previous_product_unit"`
	PreviousUnitCost         decimal.Decimal `gorm:"type:decimal(20,2)" json:"previous_unit_cost"`

	UserName  string    `gorm:"size:100" json:"user_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SharedMaterialHistory) TableName() string {
	return "shared_materials_history"
}

// DeriveUnitCost computes the per-unit cost from the purchase cost and the
// product-unit conversion factor, rounded to 2 decimal places.
func DeriveUnitCost(purchaseUnitCost, productUnit decimal.Decimal) decimal.Decimal {
	if productUnit.IsZero() {
		return decimal.Zero
	}
	return purchaseUnitCost.DivRound(productUnit, 2)
}

func ListSharedMaterials(ctx context.Context) ([]*SharedMaterial, error) {
	db := config.GetDB()
	var results []*SharedMaterial
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetSharedMaterial(ctx context.Context, id string) (*SharedMaterial, error) {
	db := config.GetDB()
	var result SharedMaterial
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateSharedMaterial(ctx context.Context, input NewSharedMaterial) (*SharedMaterial, error) {
	purchaseUnitCost, err := utils.ParseDecimal(input.PurchaseUnitCost)
	if err != nil {
		return nil, errors.New("invalid purchase unit cost")
	}
	productUnit, err := utils.ParseDecimal(input.ProductUnit)
	if err != nil {
		return nil, errors.New("invalid product unit")
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	material := SharedMaterial{
		ID:               uuid.NewString(),
		Name:             input.Name,
		PurchaseUnitCost: purchaseUnitCost,
		ProductUnit:      productUnit,
		UnitCost:         DeriveUnitCost(purchaseUnitCost, productUnit),
		CreatedBy:        userName,
		UpdatedBy:        userName,
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&material).Error; err != nil {
			return err
		}
		history := SharedMaterialHistory{
			MaterialId:       material.ID,
			ChangeType:       MaterialChangeTypeCreate,
			Name:             material.Name,
			PurchaseUnitCost: material.PurchaseUnitCost,
			ProductUnit:      material.ProductUnit,
			UnitCost:         material.UnitCost,
			UserName:         userName,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// UpdateSharedMaterial rewrites the material and appends its history entry in
// one transaction, serialized per material so concurrent edits cannot
// interleave the record and its log.
func UpdateSharedMaterial(ctx context.Context, id string, input NewSharedMaterial) (*SharedMaterial, error) {
	release, err := utils.MaterialLock(ctx, id, "SharedMaterial", "UpdateSharedMaterial")
	if err != nil {
		return nil, err
	}
	defer release()

	previous, err := GetSharedMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	purchaseUnitCost, err := utils.ParseDecimal(input.PurchaseUnitCost)
	if err != nil {
		return nil, errors.New("invalid purchase unit cost")
	}
	productUnit, err := utils.ParseDecimal(input.ProductUnit)
	if err != nil {
		return nil, errors.New("invalid product unit")
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	material := *previous
	material.Name = input.Name
	material.PurchaseUnitCost = purchaseUnitCost
	material.ProductUnit = productUnit
	material.UnitCost = DeriveUnitCost(purchaseUnitCost, productUnit)
	material.UpdatedBy = userName

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&material).Error; err != nil {
			return err
		}
		history := SharedMaterialHistory{
			MaterialId:               material.ID,
			ChangeType:               MaterialChangeTypeUpdate,
			Name:                     material.Name,
			PurchaseUnitCost:         material.PurchaseUnitCost,
			ProductUnit:              material.ProductUnit,
			UnitCost:                 material.UnitCost,
			PreviousName:             previous.Name,
			PreviousPurchaseUnitCost: previous.PurchaseUnitCost,
			PreviousProductUnit:      previous.ProductUnit,
			PreviousUnitCost:         previous.UnitCost,
			UserName:                 userName,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func DeleteSharedMaterial(ctx context.Context, id string) error {
	release, err := utils.MaterialLock(ctx, id, "SharedMaterial", "DeleteSharedMaterial")
	if err != nil {
		return err
	}
	defer release()

	previous, err := GetSharedMaterial(ctx, id)
	if err != nil {
		return err
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	db := config.GetDB()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&SharedMaterial{}, "id = ?", id).Error; err != nil {
			return err
		}
		history := SharedMaterialHistory{
			MaterialId:               previous.ID,
			ChangeType:               MaterialChangeTypeDelete,
			PreviousName:             previous.Name,
			PreviousPurchaseUnitCost: previous.PurchaseUnitCost,
			PreviousProductUnit:      previous.ProductUnit,
			PreviousUnitCost:         previous.UnitCost,
			UserName:                 userName,
		}
		return tx.Create(&history).Error
	})
}

func ListSharedMaterialHistory(ctx context.Context, materialId string) ([]*SharedMaterialHistory, error) {
	db := config.GetDB()
	var results []*SharedMaterialHistory
	err := db.WithContext(ctx).
		Where("material_id = ?", materialId).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
