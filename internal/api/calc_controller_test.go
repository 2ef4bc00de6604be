package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecopath/server/internal/services"
)

// newCalcTestRouter - роутер с endpoint агрегации поверх дефолтных коэффициентов
func newCalcTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCalcController(services.NewCalcService(services.NewFactorService(nil, nil)))

	r := gin.New()
	r.POST("/api/v1/calc/aggregate", controller.Aggregate)
	return r
}

func TestAggregateEndpointHappyPath(t *testing.T) {
	r := newCalcTestRouter()

	body := `{"activities":[{"activity":"haulage","fuelType":"petrol","quantity":10,"unit":"L"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/aggregate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.CalcResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, 0.0231, result.TotalTons)
	assert.Equal(t, 0.0231, result.Items[0].Tons)
	assert.False(t, result.Items[0].Unresolved)
}

func TestAggregateEndpointEmptyActivities(t *testing.T) {
	r := newCalcTestRouter()

	for _, body := range []string{`{"activities":[]}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/aggregate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		// 400 с plain-text телом, не JSON
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No activities provided", w.Body.String())
	}
}

func TestAggregateEndpointMalformedJSON(t *testing.T) {
	r := newCalcTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/aggregate", strings.NewReader(`{broken`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No activities provided", w.Body.String())
}

func TestAggregateEndpointUnknownFuelType(t *testing.T) {
	r := newCalcTestRouter()

	body := `{"activities":[{"activity":"misc","fuelType":"unobtainium","quantity":500,"unit":"kg"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calc/aggregate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.CalcResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, 0.0, result.TotalTons)
	assert.True(t, result.Items[0].Unresolved)
}
