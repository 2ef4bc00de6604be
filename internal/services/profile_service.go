package services

import (
	"errors"
	"fmt"
	"strings"

	"ecopath/server/internal/models"

	"gorm.io/gorm"
)

// ProfileInput - данные профиля оператора, приходящие с формы регистрации
type ProfileInput struct {
	MineName string `json:"mineName"`
	MineID   string `json:"mineId"`
	Location string `json:"location"`
	Area     string `json:"area"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ProfileService управляет профилем оператора шахты.
// Профиль по факту один: чтение возвращает первую строку,
// запись выполняет upsert по бизнес-ключу MineID
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService создает новый сервис профиля
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile возвращает первый (единственный) профиль
func (s *ProfileService) GetProfile() (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile создает профиль или полностью перезаписывает существующий
// с тем же MineID. Возвращает created=true при создании
func (s *ProfileService) UpsertProfile(in ProfileInput) (*models.Profile, bool, error) {
	var profile models.Profile
	err := s.db.First(&profile, "mine_id = ?", in.MineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			MineName: strings.TrimSpace(in.MineName),
			MineID:   strings.TrimSpace(in.MineID),
			Location: in.Location,
			Area:     in.Area,
			Email:    in.Email,
			Phone:    in.Phone,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, false, fmt.Errorf("ошибка создания профиля: %w", err)
		}
		return &profile, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	profile.MineName = strings.TrimSpace(in.MineName)
	profile.Location = in.Location
	profile.Area = in.Area
	profile.Email = in.Email
	profile.Phone = in.Phone
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, false, fmt.Errorf("ошибка обновления профиля: %w", err)
	}
	return &profile, false, nil
}

// PatchProfile обновляет профиль по MineID, создавая его при отсутствии.
// Пустое имя шахты не затирает существующее
func (s *ProfileService) PatchProfile(in ProfileInput) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.First(&profile, "mine_id = ?", in.MineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.Profile{
			MineName: strings.TrimSpace(in.MineName),
			MineID:   strings.TrimSpace(in.MineID),
			Location: in.Location,
			Area:     in.Area,
			Email:    in.Email,
			Phone:    in.Phone,
		}
		if err := s.db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("ошибка создания профиля: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.MineName) != "" {
		profile.MineName = strings.TrimSpace(in.MineName)
	}
	profile.Location = in.Location
	profile.Area = in.Area
	profile.Email = in.Email
	profile.Phone = in.Phone
	if err := s.db.Save(&profile).Error; err != nil {
		return nil, fmt.Errorf("ошибка обновления профиля: %w", err)
	}
	return &profile, nil
}
