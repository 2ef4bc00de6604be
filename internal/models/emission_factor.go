package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FactorCategory представляет категорию коэффициента выбросов
type FactorCategory string

const (
	FactorCategoryFuel        FactorCategory = "fuel"        // Топливо (бензин, дизель, природный газ)
	FactorCategoryElectricity FactorCategory = "electricity" // Электроэнергия (сетевая)
	FactorCategoryMethane     FactorCategory = "methane"     // Метан (захват/окисление)
)

// EmissionFactor представляет версионированный коэффициент выбросов CO2e
// Factor хранится в кг CO2e на единицу активности (литр, кВтч, м³),
// перевод в тонны выполняется на этапе агрегации (деление на 1000)
type EmissionFactor struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey"`
	Category      FactorCategory `json:"category" gorm:"type:varchar(20);not null;index"`
	Code          string         `json:"code" gorm:"type:varchar(100);not null;index"` // petrol, diesel, natural_gas, grid, ...
	Unit          string         `json:"unit" gorm:"type:varchar(50);not null"`        // kg_per_liter, kg_per_kwh, kg_per_m3
	Factor        float64        `json:"factor" gorm:"not null"`
	EffectiveFrom time.Time      `json:"effectiveFrom" gorm:"not null;index"`
	EffectiveTo   *time.Time     `json:"effectiveTo,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы
func (EmissionFactor) TableName() string {
	return "emission_factors"
}

// BeforeCreate генерирует UUID и подставляет дату начала действия
func (ef *EmissionFactor) BeforeCreate(tx *gorm.DB) error {
	if ef.ID == "" {
		ef.ID = uuid.New().String()
	}
	if ef.EffectiveFrom.IsZero() {
		ef.EffectiveFrom = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return nil
}

// IsEffectiveAt проверяет, действует ли коэффициент на указанный момент
func (ef *EmissionFactor) IsEffectiveAt(t time.Time) bool {
	if ef.EffectiveFrom.After(t) {
		return false
	}
	if ef.EffectiveTo != nil && ef.EffectiveTo.Before(t) {
		return false
	}
	return true
}
