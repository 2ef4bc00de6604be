package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ecopath/server/internal/services"

	"github.com/gin-gonic/gin"
)

// ReportController управляет API endpoints отчётов и их записей
type ReportController struct {
	service *services.ReportService
	hub     *Hub
	events  *EventPublisher
}

// NewReportController создает новый контроллер отчётов
func NewReportController(service *services.ReportService, hub *Hub, events *EventPublisher) *ReportController {
	return &ReportController{
		service: service,
		hub:     hub,
		events:  events,
	}
}

// ReportCreateRequest - тело запроса на создание отчёта
type ReportCreateRequest struct {
	Title       string     `json:"title"`
	PeriodStart *time.Time `json:"periodStart"`
	PeriodEnd   *time.Time `json:"periodEnd"`
}

// CreateReport создает новый отчёт
// POST /api/v1/reports
func (rc *ReportController) CreateReport(c *gin.Context) {
	var req ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := rc.service.CreateReport(req.Title, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	rc.events.Publish(ReportEvent{
		Type:       "report.created",
		ReportID:   report.ID,
		OccurredAt: time.Now().UTC(),
	})
	c.JSON(http.StatusCreated, gin.H{"id": report.ID})
}

// EnsureCurrentReport возвращает (создавая при отсутствии) дневной отчёт
// POST /api/v1/reports/current
func (rc *ReportController) EnsureCurrentReport(c *gin.Context) {
	// Тело опционально: дефолтный заголовок подставит сервис
	var req ReportCreateRequest
	_ = c.ShouldBindJSON(&req)

	report, err := rc.service.EnsureCurrentReport(req.Title)
	if err != nil {
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": report.ID})
}

// GetLatestSummary пересчитывает сводку по самому свежему отчёту
// GET /api/v1/reports/latest/summary
func (rc *ReportController) GetLatestSummary(c *gin.Context) {
	summary, err := rc.service.LatestSummary()
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetSummary пересчитывает сводку по отчёту
// GET /api/v1/reports/:id/summary
func (rc *ReportController) GetSummary(c *gin.Context) {
	summary, err := rc.service.Summary(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddCalcEntry добавляет запись о потреблении к отчёту
// POST /api/v1/reports/:id/calc-entries
func (rc *ReportController) AddCalcEntry(c *gin.Context) {
	var req services.ActivityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := rc.service.AddCalcEntry(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}

	rc.afterEntryWrite(entry.ReportID, "calc", entry.ID)
	c.JSON(http.StatusCreated, entry)
}

// AddCalcEntriesBulk добавляет пачку записей о потреблении к отчёту
// POST /api/v1/reports/:id/calc-entries/bulk
func (rc *ReportController) AddCalcEntriesBulk(c *gin.Context) {
	var req struct {
		Items []services.ActivityInput `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "No entries provided")
		return
	}

	added, err := rc.service.AddCalcEntriesBulk(c.Param("id"), req.Items)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		if errors.Is(err, services.ErrNoEntries) {
			c.String(http.StatusBadRequest, "No entries provided")
			return
		}
		respondInternalError(c, err)
		return
	}

	rc.afterEntryWrite(c.Param("id"), "calc", "")
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// AddPathwaysEntry добавляет запись о стратегиях снижения к отчёту
// POST /api/v1/reports/:id/pathways-entries
func (rc *ReportController) AddPathwaysEntry(c *gin.Context) {
	var req services.PathwaysInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := rc.service.AddPathwaysEntry(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}

	rc.afterEntryWrite(entry.ReportID, "pathways", entry.ID)
	c.JSON(http.StatusCreated, entry)
}

// AddOffsetEntry добавляет запись об офсетах к отчёту
// POST /api/v1/reports/:id/offset-entries
func (rc *ReportController) AddOffsetEntry(c *gin.Context) {
	var req services.OffsetInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}

	entry, err := rc.service.AddOffsetEntry(c.Param("id"), req)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		respondInternalError(c, err)
		return
	}

	rc.afterEntryWrite(entry.ReportID, "offset", entry.ID)
	c.JSON(http.StatusCreated, entry)
}

// afterEntryWrite выполняет best-effort пост-обработку записи:
// пересчитывает сводку, рассылает её дашбордам, кэширует футпринт
// и публикует событие в Kafka. Ошибки здесь не влияют на HTTP-ответ
func (rc *ReportController) afterEntryWrite(reportID, entryType, entryID string) {
	rc.events.Publish(ReportEvent{
		Type:       "entry.added",
		ReportID:   reportID,
		EntryType:  entryType,
		EntryID:    entryID,
		OccurredAt: time.Now().UTC(),
	})

	summary, err := rc.service.Summary(reportID)
	if err != nil {
		log.Printf("⚠️ Ошибка пересчёта сводки для рассылки: %v", err)
		return
	}
	rc.service.CacheLatestTotal(summary)

	if rc.hub != nil {
		payload, err := json.Marshal(gin.H{"type": "summary.updated", "summary": summary})
		if err != nil {
			log.Printf("⚠️ Ошибка сериализации сводки: %v", err)
			return
		}
		rc.hub.BroadcastMessage(payload)
	}
}
