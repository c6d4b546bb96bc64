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

// TaxRate is the fixed 5% applied per line when IsTaxed is set.
var TaxRate = decimal.RequireFromString("0.05")

// MaterialLookup resolves a shared-material id. Returning (nil, nil) means
// the referenced record is gone; costing then falls back to zero. A non-nil
// error aborts the caller, since cost correctness needs complete data.
type MaterialLookup func(ctx context.Context, id string) (*SharedMaterial, error)

// BomItem is one line of a bill of materials. Name and UnitCost are either
// inline values or shared-material references; Resolve fills the resolved
// fields before any costing.
type BomItem struct {
	Name     RefOrLiteral    `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost RefOrLiteral    `json:"unit_cost"`
	IsShared bool            `json:"is_shared"`
	IsTaxed  bool            `json:"is_taxed"`

	ResolvedName     string          `json:"resolved_name,omitempty"`
	ResolvedUnitCost decimal.Decimal `json:"resolved_unit_cost"`
}

// Resolve dereferences shared-material fields through lookup. A missing
// referenced material resolves to an empty name and zero cost.
func (item *BomItem) Resolve(ctx context.Context, lookup MaterialLookup) error {
	item.ResolvedName = item.Name.Literal
	item.ResolvedUnitCost = decimal.Zero

	var materialId string
	if item.Name.IsRef() {
		materialId = item.Name.Ref
	}
	if item.UnitCost.IsRef() {
		materialId = item.UnitCost.Ref
	}

	if materialId != "" {
		material, err := lookup(ctx, materialId)
		if err != nil {
			return err
		}
		if material == nil {
			// deleted material: zero contribution, keep going
			return nil
		}
		if item.Name.IsRef() {
			item.ResolvedName = material.Name
		}
		if item.UnitCost.IsRef() {
			item.ResolvedUnitCost = material.UnitCost
		}
		if !item.UnitCost.IsRef() {
			if cost, err := item.UnitCost.Decimal(); err == nil {
				item.ResolvedUnitCost = cost
			}
		}
		return nil
	}

	if cost, err := item.UnitCost.Decimal(); err == nil {
		item.ResolvedUnitCost = cost
	}
	return nil
}

// LineCost is quantity times resolved unit cost, plus 5% tax when flagged.
// Resolve must have run first.
func (item BomItem) LineCost() decimal.Decimal {
	cost := item.Quantity.Mul(item.ResolvedUnitCost)
	if item.IsTaxed {
		cost = cost.Add(cost.Mul(TaxRate))
	}
	return cost
}

type BomItems []BomItem

func (items BomItems) Value() (driver.Value, error) {
	if items == nil {
		items = BomItems{}
	}
	return json.Marshal(items)
}

func (items *BomItems) Scan(value interface{}) error {
	if value == nil {
		*items = BomItems{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into BomItems", value)
	}
	return json.Unmarshal(data, items)
}

// BomTable is one product's bill of materials plus its shipping volume and
// the dealer-pricing defaults last saved from a pricing analysis.
type BomTable struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	ProductCode string          `gorm:"size:50;index" json:"product_code"`
	Barcode     string          `gorm:"size:50" json:"barcode"`
	TableName   string          `gorm:"column:table_name;size:255;not null" json:"table_name" binding:"required"`
	Category    RefOrLiteral    `gorm:"type:json;serializer:json" json:"category"`
	Items       BomItems        `gorm:"type:json" json:"items"`
	Volume      decimal.Decimal `gorm:"type:decimal(20,4)" json:"volume"`
	ImageUrl    string          `json:"image_url"`

	DealerMargin      decimal.Decimal `gorm:"type:decimal(10,4)" json:"dealer_margin"`
	SpecialMargin     decimal.Decimal `gorm:"type:decimal(10,4)" json:"special_margin"`
	BottomMargin      decimal.Decimal `gorm:"type:decimal(10,4)" json:"bottom_margin"`
	DealerPrice       decimal.Decimal `gorm:"type:decimal(20,2)" json:"dealer_price"`
	SpecialPrice      decimal.Decimal `gorm:"type:decimal(20,2)" json:"special_price"`
	BottomPrice       decimal.Decimal `gorm:"type:decimal(20,2)" json:"bottom_price"`
	LogisticsCostRate decimal.Decimal `gorm:"type:decimal(10,4)" json:"logistics_cost_rate"`
	WebsitePrice      decimal.Decimal `gorm:"type:decimal(20,2)" json:"website_price"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	CreatedBy string    `gorm:"size:100" json:"created_by"`
	UpdatedBy string    `gorm:"size:100" json:"updated_by"`
}

type NewBomTable struct {
	ProductCode string       `json:"product_code"`
	Barcode     string       `json:"barcode"`
	TableName   string       `json:"table_name" binding:"required"`
	Category    RefOrLiteral `json:"category"`
	Items       BomItems     `json:"items"`
	Volume      string       `json:"volume"`
	ImageUrl    string       `json:"image_url"`
}

// ResolveItems dereferences every line item's shared-material fields.
func (bom *BomTable) ResolveItems(ctx context.Context, lookup MaterialLookup) error {
	for i := range bom.Items {
		if err := bom.Items[i].Resolve(ctx, lookup); err != nil {
			return fmt.Errorf("error resolving item %d of %s: %v", i, bom.TableName, err)
		}
	}
	return nil
}

// ComputeCost sums the resolved line costs. Full precision is kept here;
// callers round to 2 places only for display.
func (bom BomTable) ComputeCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range bom.Items {
		total = total.Add(item.LineCost())
	}
	return total
}

// LookupMaterial is the store-backed MaterialLookup: one read per reference.
func LookupMaterial(ctx context.Context, id string) (*SharedMaterial, error) {
	material, err := GetSharedMaterial(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return material, nil
}

func ListBomTables(ctx context.Context) ([]*BomTable, error) {
	db := config.GetDB()
	var results []*BomTable
	if err := db.WithContext(ctx).Order("created_at").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetBomTable(ctx context.Context, id string) (*BomTable, error) {
	db := config.GetDB()
	var result BomTable
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateBomTable(ctx context.Context, input NewBomTable) (*BomTable, error) {
	volume := decimal.Zero
	if input.Volume != "" {
		v, err := utils.ParseDecimal(input.Volume)
		if err != nil {
			return nil, errors.New("invalid volume")
		}
		volume = v
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	bom := BomTable{
		ID:          uuid.NewString(),
		ProductCode: input.ProductCode,
		Barcode:     input.Barcode,
		TableName:   input.TableName,
		Category:    input.Category,
		Items:       input.Items,
		Volume:      volume,
		ImageUrl:    input.ImageUrl,
		CreatedBy:   userName,
		UpdatedBy:   userName,
	}
	if bom.Items == nil {
		bom.Items = BomItems{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&bom).Error; err != nil {
		return nil, err
	}
	return &bom, nil
}

func UpdateBomTable(ctx context.Context, id string, input NewBomTable) (*BomTable, error) {
	bom, err := GetBomTable(ctx, id)
	if err != nil {
		return nil, err
	}

	volume := bom.Volume
	if input.Volume != "" {
		v, err := utils.ParseDecimal(input.Volume)
		if err != nil {
			return nil, errors.New("invalid volume")
		}
		volume = v
	}

	userName, _ := utils.GetUserNameFromContext(ctx)

	bom.ProductCode = input.ProductCode
	bom.Barcode = input.Barcode
	bom.TableName = input.TableName
	bom.Category = input.Category
	bom.Items = input.Items
	bom.Volume = volume
	bom.ImageUrl = input.ImageUrl
	bom.UpdatedBy = userName
	if bom.Items == nil {
		bom.Items = BomItems{}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(bom).Error; err != nil {
		return nil, err
	}
	return bom, nil
}

func DeleteBomTable(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Delete(&BomTable{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}

// ResolveCategoryName turns the category field into a display name,
// dereferencing through the category table when it is a reference.
func ResolveCategoryName(ctx context.Context, category RefOrLiteral) (string, error) {
	if !category.IsRef() {
		return category.Literal, nil
	}
	record, err := GetCategory(ctx, category.Ref)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return record.Name, nil
}
