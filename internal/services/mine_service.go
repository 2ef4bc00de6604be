package services

import (
	"fmt"
	"strings"

	"ecopath/server/internal/models"

	"gorm.io/gorm"
)

// MineService управляет справочником шахт
type MineService struct {
	db *gorm.DB
}

// NewMineService создает новый сервис шахт
func NewMineService(db *gorm.DB) *MineService {
	return &MineService{db: db}
}

// GetMines возвращает список шахт
func (s *MineService) GetMines() ([]models.Mine, error) {
	var mines []models.Mine
	if err := s.db.Order("name").Find(&mines).Error; err != nil {
		return nil, err
	}
	return mines, nil
}

// GetMineByID возвращает шахту по ID
func (s *MineService) GetMineByID(id string) (*models.Mine, error) {
	var mine models.Mine
	if err := s.db.First(&mine, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mine, nil
}

// CreateMine создает новую шахту
func (s *MineService) CreateMine(mine *models.Mine) error {
	mine.Name = strings.TrimSpace(mine.Name)
	if err := s.db.Create(mine).Error; err != nil {
		return fmt.Errorf("ошибка создания шахты: %w", err)
	}
	return nil
}

// UpdateMine обновляет существующую шахту
func (s *MineService) UpdateMine(id string, upd *models.Mine) (*models.Mine, error) {
	var mine models.Mine
	if err := s.db.First(&mine, "id = ?", id).Error; err != nil {
		return nil, err
	}

	mine.Name = strings.TrimSpace(upd.Name)
	mine.Type = upd.Type
	mine.Degree = upd.Degree
	mine.Location = upd.Location

	if err := s.db.Save(&mine).Error; err != nil {
		return nil, fmt.Errorf("ошибка обновления шахты: %w", err)
	}
	return &mine, nil
}

// DeleteMine удаляет шахту по ID
func (s *MineService) DeleteMine(id string) error {
	res := s.db.Delete(&models.Mine{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
