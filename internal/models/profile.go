package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile представляет профиль оператора шахты
// MineID - бизнес-ключ, по которому выполняется upsert
type Profile struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	MineName string `json:"mineName" gorm:"type:varchar(255);not null"`
	MineID   string `json:"mineId" gorm:"type:varchar(100);uniqueIndex;not null"`
	Location string `json:"location" gorm:"type:varchar(255)"`
	Area     string `json:"area" gorm:"type:varchar(100)"`
	Email    string `json:"email" gorm:"type:varchar(255)"`
	Phone    string `json:"phone" gorm:"type:varchar(50)"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// TableName указывает имя таблицы
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate генерирует UUID
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
