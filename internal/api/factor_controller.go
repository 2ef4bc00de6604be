package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ecopath/server/internal/models"
	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FactorController управляет API endpoints справочника коэффициентов (админ)
type FactorController struct {
	service *services.FactorService
}

// NewFactorController создает новый контроллер коэффициентов
func NewFactorController(service *services.FactorService) *FactorController {
	return &FactorController{service: service}
}

// FactorRequest - тело запроса на создание/обновление коэффициента
type FactorRequest struct {
	Category      string     `json:"category"`
	Code          string     `json:"code"`
	Unit          string     `json:"unit"`
	Factor        float64    `json:"factor"`
	EffectiveFrom *time.Time `json:"effectiveFrom"`
	EffectiveTo   *time.Time `json:"effectiveTo"`
}

// GetFactors получает список коэффициентов
// GET /api/v1/factors
func (fc *FactorController) GetFactors(c *gin.Context) {
	factors, err := fc.service.ListFactors()
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, factors)
}

// GetFactor получает коэффициент по ID
// GET /api/v1/factors/:id
func (fc *FactorController) GetFactor(c *gin.Context) {
	factor, err := fc.service.GetFactorByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, factor)
}

// CreateFactor создает новый коэффициент
// POST /api/v1/factors
func (fc *FactorController) CreateFactor(c *gin.Context) {
	var req FactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Unit) == "" {
		c.String(http.StatusBadRequest, "Code and Unit are required")
		return
	}

	factor := models.EmissionFactor{
		Category: models.FactorCategory(strings.ToLower(strings.TrimSpace(req.Category))),
		Code:     req.Code,
		Unit:     req.Unit,
		Factor:   req.Factor,
	}
	if req.EffectiveFrom != nil {
		factor.EffectiveFrom = *req.EffectiveFrom
	}
	factor.EffectiveTo = req.EffectiveTo

	if err := fc.service.CreateFactor(&factor); err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, factor)
}

// UpdateFactor обновляет существующий коэффициент
// PUT /api/v1/factors/:id
func (fc *FactorController) UpdateFactor(c *gin.Context) {
	var req FactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Code) == "" || strings.TrimSpace(req.Unit) == "" {
		c.String(http.StatusBadRequest, "Code and Unit are required")
		return
	}

	upd := models.EmissionFactor{
		Category: models.FactorCategory(strings.ToLower(strings.TrimSpace(req.Category))),
		Code:     req.Code,
		Unit:     req.Unit,
		Factor:   req.Factor,
	}
	if req.EffectiveFrom != nil {
		upd.EffectiveFrom = *req.EffectiveFrom
	}
	upd.EffectiveTo = req.EffectiveTo

	factor, err := fc.service.UpdateFactor(c.Param("id"), &upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, factor)
}

// DeleteFactor удаляет коэффициент
// DELETE /api/v1/factors/:id
func (fc *FactorController) DeleteFactor(c *gin.Context) {
	if err := fc.service.DeleteFactor(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
