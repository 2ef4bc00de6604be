package models

import (
	"log"

	"gorm.io/gorm"
)

// AutoMigrate создает таблицы в БД
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&EmissionFactor{},
		&Mine{},
		&Profile{},
		&Report{},
		&CalcEntry{},
		&PathwaysEntry{},
		&OffsetEntry{},
	)
	if err != nil {
		log.Printf("⚠️ AutoMigrate для существующих таблиц: %v", err)
		return err
	}
	return nil
}

// SeedDefaults заполняет справочники дефолтными данными при первом запуске.
// Идемпотентно: сеет только если таблица пустая
func SeedDefaults(db *gorm.DB) error {
	var factorCount int64
	if err := db.Model(&EmissionFactor{}).Count(&factorCount).Error; err != nil {
		return err
	}
	if factorCount == 0 {
		defaults := []EmissionFactor{
			{Category: FactorCategoryFuel, Code: "petrol", Unit: "kg_per_liter", Factor: 2.31},
			{Category: FactorCategoryFuel, Code: "diesel", Unit: "kg_per_liter", Factor: 2.68},
			{Category: FactorCategoryFuel, Code: "natural_gas", Unit: "kg_per_m3", Factor: 2.02},
			{Category: FactorCategoryElectricity, Code: "grid", Unit: "kg_per_kwh", Factor: 0.75},
			{Category: FactorCategoryMethane, Code: "ch4_capture_gwp", Unit: "tco2e_per_ton_ch4", Factor: 27.0},
			{Category: FactorCategoryMethane, Code: "vam_gwp", Unit: "tco2e_per_ton_ch4", Factor: 20.0},
		}
		if err := db.Create(&defaults).Error; err != nil {
			return err
		}
		log.Printf("✅ Посеяно %d дефолтных коэффициентов выбросов", len(defaults))
	}

	var mineCount int64
	if err := db.Model(&Mine{}).Count(&mineCount).Error; err != nil {
		return err
	}
	if mineCount == 0 {
		sample := Mine{Name: "Sample Mine", Type: MineTypeSurface, Degree: MineDegree1, Location: "Local"}
		if err := db.Create(&sample).Error; err != nil {
			return err
		}
		log.Println("✅ Посеяна демонстрационная шахта")
	}

	return nil
}
