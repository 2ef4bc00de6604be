package api

import (
	"errors"
	"net/http"

	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
)

// CalcController управляет API endpoint агрегации футпринта
type CalcController struct {
	service *services.CalcService
}

// NewCalcController создает новый контроллер расчёта
func NewCalcController(service *services.CalcService) *CalcController {
	return &CalcController{service: service}
}

// CalcRequest - тело запроса агрегации
type CalcRequest struct {
	Activities []services.ActivityInput `json:"activities"`
}

// Aggregate считает футпринт по списку активностей
// POST /api/v1/calc/aggregate
func (cc *CalcController) Aggregate(c *gin.Context) {
	var req CalcRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "No activities provided")
		return
	}

	result, err := cc.service.Aggregate(req.Activities)
	if err != nil {
		if errors.Is(err, services.ErrNoActivities) {
			c.String(http.StatusBadRequest, "No activities provided")
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
