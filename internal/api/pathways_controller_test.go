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

func newStatelessTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/pathways/aggregate", NewPathwaysController().Aggregate)
	r.POST("/api/v1/offsets/aggregate", NewOffsetController().Aggregate)
	return r
}

func TestPathwaysEndpoint(t *testing.T) {
	r := newStatelessTestRouter()

	body := `{"evCount":10,"reMW":1,"rePct":100,"mcCH4":2,"vamCH4":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pathways/aggregate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.PathwaysResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 40.0, result.EvTons)
	assert.Equal(t, 2299.5, result.ReTons)
	assert.Equal(t, 54.0, result.McTons)
	assert.Equal(t, 20.0, result.VamTons)
	assert.Equal(t, 2413.5, result.TotalTons)
}

func TestPathwaysEndpointEmptyBody(t *testing.T) {
	r := newStatelessTestRouter()

	// Отсутствующие поля трактуются как нули, ошибочных исходов нет
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pathways/aggregate", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.PathwaysResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0.0, result.TotalTons)
}

func TestOffsetsEndpoint(t *testing.T) {
	r := newStatelessTestRouter()

	body := `{"areaHectares":10,"treesPerHectare":100,"years":5,"marketRate":50}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/offsets/aggregate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.OffsetResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 22.0, result.AnnualTons)
	assert.Equal(t, 110.0, result.TotalTons)
	assert.Equal(t, 110.0, result.Credits)
	assert.Equal(t, 5500.0, result.Value)
}
