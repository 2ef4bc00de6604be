package api

import (
	"errors"
	"net/http"
	"strings"

	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileController управляет API endpoints профиля оператора
type ProfileController struct {
	service *services.ProfileService
}

// NewProfileController создает новый контроллер профиля
func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{service: service}
}

// GetProfile получает профиль оператора (первая строка)
// GET /api/v1/profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	profile, err := pc.service.GetProfile()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpsertProfile создает или перезаписывает профиль по mineId
// POST /api/v1/profile
func (pc *ProfileController) UpsertProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.MineName) == "" || strings.TrimSpace(req.MineID) == "" {
		c.String(http.StatusBadRequest, "MineName and MineId are required")
		return
	}

	profile, created, err := pc.service.UpsertProfile(req)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	if created {
		c.JSON(http.StatusCreated, profile)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PatchProfile обновляет профиль по mineId, создавая при отсутствии
// PUT /api/v1/profile
func (pc *ProfileController) PatchProfile(c *gin.Context) {
	var req services.ProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.MineID) == "" {
		c.String(http.StatusBadRequest, "MineId is required")
		return
	}

	profile, err := pc.service.PatchProfile(req)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
