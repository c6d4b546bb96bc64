package models

import (
	"log"

	"bitbucket.org/lfkitchen/costing_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&BomTable{},
		&SharedMaterial{}, &SharedMaterialHistory{},
		&Category{},
		&CustomCombination{},
		&PricingScheme{},
		&CostRateScheme{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
