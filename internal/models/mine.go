package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MineType представляет тип шахты
type MineType string

const (
	MineTypeUnderground MineType = "underground" // Подземная добыча
	MineTypeSurface     MineType = "surface"     // Открытая добыча
)

// MineDegree представляет степень газообильности шахты
type MineDegree string

const (
	MineDegree1 MineDegree = "degree1"
	MineDegree2 MineDegree = "degree2"
	MineDegree3 MineDegree = "degree3"
)

// Mine представляет шахту (справочная сущность, не связана с отчётами)
type Mine struct {
	ID       string     `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string     `json:"name" gorm:"type:varchar(255);not null"`
	Type     MineType   `json:"type" gorm:"type:varchar(20);not null"`
	Degree   MineDegree `json:"degree" gorm:"type:varchar(20);not null"`
	Location string     `json:"location" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы
func (Mine) TableName() string {
	return "mines"
}

// BeforeCreate генерирует UUID
func (m *Mine) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
