package api

import (
	"net/http"

	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
)

// PathwaysController управляет API endpoint расчёта стратегий снижения
type PathwaysController struct{}

// NewPathwaysController создает новый контроллер стратегий снижения
func NewPathwaysController() *PathwaysController {
	return &PathwaysController{}
}

// Aggregate считает избегнутые выбросы по стратегиям снижения
// POST /api/v1/pathways/aggregate
func (pc *PathwaysController) Aggregate(c *gin.Context) {
	var req services.PathwaysInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	c.JSON(http.StatusOK, services.ComputePathways(req))
}
