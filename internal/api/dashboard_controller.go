package api

import (
	"net/http"

	"ecopath/server/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardController отдает агрегаты для главного экрана
type DashboardController struct {
	db *gorm.DB
}

// NewDashboardController создает новый контроллер дашборда
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{db: db}
}

// GetSummary получает счетчики справочников
// GET /api/v1/dashboard/summary
func (dc *DashboardController) GetSummary(c *gin.Context) {
	var mines, factors int64
	if err := dc.db.Model(&models.Mine{}).Count(&mines).Error; err != nil {
		respondInternalError(c, err)
		return
	}
	if err := dc.db.Model(&models.EmissionFactor{}).Count(&factors).Error; err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mines":   mines,
		"factors": factors,
	})
}
