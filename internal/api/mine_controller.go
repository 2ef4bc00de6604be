package api

import (
	"errors"
	"net/http"
	"strings"

	"ecopath/server/internal/models"
	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MineController управляет API endpoints справочника шахт
type MineController struct {
	service *services.MineService
}

// NewMineController создает новый контроллер шахт
func NewMineController(service *services.MineService) *MineController {
	return &MineController{service: service}
}

// MineRequest - тело запроса на создание/обновление шахты
type MineRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`   // underground | surface
	Degree   string `json:"degree"` // degree1 | degree2 | degree3
	Location string `json:"location"`
}

// GetMines получает список шахт
// GET /api/v1/mines
func (mc *MineController) GetMines(c *gin.Context) {
	mines, err := mc.service.GetMines()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, mines)
}

// CreateMine создает новую шахту
// POST /api/v1/mines
func (mc *MineController) CreateMine(c *gin.Context) {
	var req MineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.String(http.StatusBadRequest, "Name is required")
		return
	}

	mine := models.Mine{
		Name:     req.Name,
		Type:     models.MineType(strings.ToLower(strings.TrimSpace(req.Type))),
		Degree:   models.MineDegree(strings.ToLower(strings.TrimSpace(req.Degree))),
		Location: req.Location,
	}
	if err := mc.service.CreateMine(&mine); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mine)
}

// UpdateMine обновляет существующую шахту
// PUT /api/v1/mines/:id
func (mc *MineController) UpdateMine(c *gin.Context) {
	var req MineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.String(http.StatusBadRequest, "Name is required")
		return
	}

	upd := models.Mine{
		Name:     req.Name,
		Type:     models.MineType(strings.ToLower(strings.TrimSpace(req.Type))),
		Degree:   models.MineDegree(strings.ToLower(strings.TrimSpace(req.Degree))),
		Location: req.Location,
	}
	mine, err := mc.service.UpdateMine(c.Param("id"), &upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, mine)
}

// DeleteMine удаляет шахту
// DELETE /api/v1/mines/:id
func (mc *MineController) DeleteMine(c *gin.Context) {
	if err := mc.service.DeleteMine(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
