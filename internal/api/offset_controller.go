package api

import (
	"net/http"

	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
)

// OffsetController управляет API endpoint расчёта офсетов
type OffsetController struct{}

// NewOffsetController создает новый контроллер офсетов
func NewOffsetController() *OffsetController {
	return &OffsetController{}
}

// Aggregate считает секвестрацию и стоимость карбоновых кредитов
// POST /api/v1/offsets/aggregate
func (oc *OffsetController) Aggregate(c *gin.Context) {
	var req services.OffsetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	c.JSON(http.StatusOK, services.ComputeOffsets(req))
}
