package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report представляет отчётный период, группирующий записи расчётов,
// стратегий снижения и офсетов. Записи принадлежат отчёту эксклюзивно
// и удаляются каскадно вместе с ним
type Report struct {
	ID          string     `json:"id" gorm:"type:uuid;primaryKey"`
	Title       string     `json:"title" gorm:"type:varchar(255);not null"`
	PeriodStart *time.Time `json:"periodStart" gorm:"index"`
	PeriodEnd   *time.Time `json:"periodEnd" gorm:"index"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"autoCreateTime;index"`

	CalcEntries     []CalcEntry     `json:"calcEntries,omitempty" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	PathwaysEntries []PathwaysEntry `json:"pathwaysEntries,omitempty" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
	OffsetEntries   []OffsetEntry   `json:"offsetEntries,omitempty" gorm:"foreignKey:ReportID;constraint:OnDelete:CASCADE"`
}

// TableName указывает имя таблицы
func (Report) TableName() string {
	return "reports"
}

// BeforeCreate генерирует UUID
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// IsCurrentFor проверяет, является ли отчёт "текущим" для указанной даты
// (начало и конец периода совпадают с датой)
func (r *Report) IsCurrentFor(day time.Time) bool {
	if r.PeriodStart == nil || r.PeriodEnd == nil {
		return false
	}
	return r.PeriodStart.Equal(day) && r.PeriodEnd.Equal(day)
}

// CalcEntry представляет запись о потреблении топлива/электроэнергии.
// Хранит сырые входные данные; тонны CO2e вычисляются при чтении,
// запись неизменяема после создания
type CalcEntry struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	ReportID string  `json:"reportId" gorm:"type:uuid;not null;index"`
	Activity string  `json:"activity" gorm:"type:varchar(255)"`
	FuelType string  `json:"fuelType" gorm:"type:varchar(100)"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit" gorm:"type:varchar(50)"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы
func (CalcEntry) TableName() string {
	return "calc_entries"
}

// BeforeCreate генерирует UUID
func (e *CalcEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// PathwaysEntry представляет запись о стратегиях снижения выбросов
// (электромобили, возобновляемая энергия, захват метана, окисление VAM).
// Хранятся сырые входы, а не предвычисленные тонны
type PathwaysEntry struct {
	ID       string  `json:"id" gorm:"type:uuid;primaryKey"`
	ReportID string  `json:"reportId" gorm:"type:uuid;not null;index"`
	EvCount  float64 `json:"evCount"`
	ReMW     float64 `json:"reMW"`
	RePct    float64 `json:"rePct"` // Процент использования мощности, 0-100
	McCH4    float64 `json:"mcCH4"` // Тонн CH4 захвачено
	VamCH4   float64 `json:"vamCH4"` // Тонн CH4 окислено (VAM)

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы
func (PathwaysEntry) TableName() string {
	return "pathways_entries"
}

// BeforeCreate генерирует UUID
func (e *PathwaysEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// OffsetEntry представляет запись об офсетах (лесопосадки + карбоновые кредиты)
type OffsetEntry struct {
	ID              string  `json:"id" gorm:"type:uuid;primaryKey"`
	ReportID        string  `json:"reportId" gorm:"type:uuid;not null;index"`
	AreaHectares    float64 `json:"areaHectares"`
	TreesPerHectare float64 `json:"treesPerHectare"`
	Years           float64 `json:"years"`
	MarketRate      float64 `json:"marketRate"` // Цена за кредит

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы
func (OffsetEntry) TableName() string {
	return "offset_entries"
}

// BeforeCreate генерирует UUID
func (e *OffsetEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
