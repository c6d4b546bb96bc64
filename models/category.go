package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:100;not null;unique" json:"name" binding:"required"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the legacy collection name.
func (Category) TableName() string {
	return "categorys"
}

type NewCategory struct {
	Name string `json:"name" binding:"required"`
}

func ListCategories(ctx context.Context) ([]*Category, error) {
	db := config.GetDB()
	var results []*Category
	if err := db.WithContext(ctx).Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func GetCategory(ctx context.Context, id string) (*Category, error) {
	db := config.GetDB()
	var result Category
	err := db.WithContext(ctx).Where("id = ?", id).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &result, nil
}

func CreateCategory(ctx context.Context, input NewCategory) (*Category, error) {
	category := Category{
		ID:   uuid.NewString(),
		Name: input.Name,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&category).Error; err != nil {
		if utils.IsDuplicateEntryErr(err) {
			return nil, errors.New("duplicate category name")
		}
		return nil, err
	}
	return &category, nil
}

func DeleteCategory(ctx context.Context, id string) error {
	db := config.GetDB()
	result := db.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.ErrorRecordNotFound
	}
	return nil
}
