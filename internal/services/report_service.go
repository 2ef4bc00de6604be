package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"ecopath/server/internal/models"
	"ecopath/server/internal/utils"

	"gorm.io/gorm"
)

// ErrReportNotFound возвращается при запросе несуществующего отчёта
// или сводки "latest" при полном отсутствии отчётов
var ErrReportNotFound = errors.New("report not found")

// ErrNoEntries возвращается при пустом bulk-добавлении записей
var ErrNoEntries = errors.New("No entries provided")

// ReportSummary - сводка по отчёту: валовые выбросы, снижения, офсеты
// и чистый результат, всё в тоннах CO2e с округлением до 4 знаков
type ReportSummary struct {
	ReportID       string  `json:"reportId"`
	TotalEmissions float64 `json:"totalEmissions"`
	TotalPathways  float64 `json:"totalPathways"`
	TotalOffsets   float64 `json:"totalOffsets"`
	NetEmissions   float64 `json:"netEmissions"`
}

// ReportService управляет отчётами и их записями
type ReportService struct {
	db        *gorm.DB
	factors   *FactorService
	redisUtil *utils.RedisClient
}

// NewReportService создает новый сервис отчётов
func NewReportService(db *gorm.DB, factors *FactorService, redisUtil *utils.RedisClient) *ReportService {
	return &ReportService{
		db:        db,
		factors:   factors,
		redisUtil: redisUtil,
	}
}

// CreateReport создает новый отчёт с указанным периодом
func (rs *ReportService) CreateReport(title string, periodStart, periodEnd *time.Time) (*models.Report, error) {
	if title == "" {
		title = "Untitled"
	}
	report := &models.Report{
		Title:       title,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}
	if err := rs.db.Create(report).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания отчёта: %w", err)
	}
	return report, nil
}

// EnsureCurrentReport возвращает "текущий" отчёт (period_start == period_end == сегодня UTC),
// создавая его при отсутствии. Идемпотентный get-or-create.
// Гонку check-then-create сериализуем advisory lock-ом в Redis по дате;
// без Redis остаётся best-effort (возможны дубликаты за день)
func (rs *ReportService) EnsureCurrentReport(title string) (*models.Report, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	if rs.redisUtil != nil {
		lockKey := "ecopath:report:lock:" + today.Format("2006-01-02")
		acquired, err := rs.redisUtil.SetNX(lockKey, "1", 10*time.Second)
		if err != nil {
			log.Printf("⚠️ Не удалось взять lock на дневной отчёт: %v (продолжаем без lock)", err)
		} else if acquired {
			defer func() {
				if err := rs.redisUtil.Delete(lockKey); err != nil {
					log.Printf("⚠️ Ошибка освобождения lock дневного отчёта: %v", err)
				}
			}()
		} else {
			// Кто-то уже создает дневной отчёт: даём ему закончить
			time.Sleep(200 * time.Millisecond)
		}
	}

	var report models.Report
	err := rs.db.
		Where("period_start = ? AND period_end = ?", today, today).
		Order("created_at DESC").
		First(&report).Error
	if err == nil {
		return &report, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if title == "" {
		title = "Daily Report"
	}
	report = models.Report{
		Title:       title,
		PeriodStart: &today,
		PeriodEnd:   &today,
	}
	if err := rs.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания дневного отчёта: %w", err)
	}
	log.Printf("📋 Создан дневной отчёт %s на %s", report.ID, today.Format("2006-01-02"))
	return &report, nil
}

// reportExists проверяет существование отчёта
func (rs *ReportService) reportExists(id string) (bool, error) {
	var count int64
	if err := rs.db.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddCalcEntry добавляет запись о потреблении к отчёту
func (rs *ReportService) AddCalcEntry(reportID string, in ActivityInput) (*models.CalcEntry, error) {
	exists, err := rs.reportExists(reportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReportNotFound
	}

	entry := &models.CalcEntry{
		ReportID: reportID,
		Activity: in.Activity,
		FuelType: in.FuelType,
		Quantity: in.Quantity,
		Unit:     in.Unit,
	}
	if err := rs.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания записи расчёта: %w", err)
	}
	return entry, nil
}

// AddCalcEntriesBulk добавляет пачку записей о потреблении к отчёту
func (rs *ReportService) AddCalcEntriesBulk(reportID string, items []ActivityInput) (int, error) {
	exists, err := rs.reportExists(reportID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrReportNotFound
	}
	if len(items) == 0 {
		return 0, ErrNoEntries
	}

	entries := make([]models.CalcEntry, 0, len(items))
	for _, in := range items {
		entries = append(entries, models.CalcEntry{
			ReportID: reportID,
			Activity: in.Activity,
			FuelType: in.FuelType,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}
	if err := rs.db.Create(&entries).Error; err != nil {
		return 0, fmt.Errorf("ошибка bulk-вставки записей: %w", err)
	}
	return len(entries), nil
}

// AddPathwaysEntry добавляет запись о стратегиях снижения к отчёту
func (rs *ReportService) AddPathwaysEntry(reportID string, in PathwaysInput) (*models.PathwaysEntry, error) {
	exists, err := rs.reportExists(reportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReportNotFound
	}

	entry := &models.PathwaysEntry{
		ReportID: reportID,
		EvCount:  in.EvCount,
		ReMW:     in.ReMW,
		RePct:    in.RePct,
		McCH4:    in.McCH4,
		VamCH4:   in.VamCH4,
	}
	if err := rs.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания записи снижения: %w", err)
	}
	return entry, nil
}

// AddOffsetEntry добавляет запись об офсетах к отчёту
func (rs *ReportService) AddOffsetEntry(reportID string, in OffsetInput) (*models.OffsetEntry, error) {
	exists, err := rs.reportExists(reportID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrReportNotFound
	}

	entry := &models.OffsetEntry{
		ReportID:        reportID,
		AreaHectares:    in.AreaHectares,
		TreesPerHectare: in.TreesPerHectare,
		Years:           in.Years,
		MarketRate:      in.MarketRate,
	}
	if err := rs.db.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("ошибка создания записи офсетов: %w", err)
	}
	return entry, nil
}

// Summary пересчитывает сводку по отчёту с указанным ID
func (rs *ReportService) Summary(reportID string) (*ReportSummary, error) {
	var report models.Report
	err := rs.db.
		Preload("CalcEntries").
		Preload("PathwaysEntries").
		Preload("OffsetEntries").
		First(&report, "id = ?", reportID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return rs.summarize(&report), nil
}

// LatestSummary пересчитывает сводку по самому свежему отчёту.
// Отсутствие отчётов - это not found, а не нулевая сводка
func (rs *ReportService) LatestSummary() (*ReportSummary, error) {
	var report models.Report
	err := rs.db.
		Preload("CalcEntries").
		Preload("PathwaysEntries").
		Preload("OffsetEntries").
		Order("created_at DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return rs.summarize(&report), nil
}

// summarize пересчитывает сводку по загруженному отчёту.
// Итоги не хранятся денормализованно: каждая запись пересчитывается заново,
// коэффициенты разрешаются на каждую запись отдельно
func (rs *ReportService) summarize(report *models.Report) *ReportSummary {
	totalEmissions := 0.0
	for _, e := range report.CalcEntries {
		factor := rs.factors.Resolve(e.FuelType)
		tons := e.Quantity * factor / 1000.0
		if math.IsNaN(tons) || math.IsInf(tons, 0) {
			tons = 0
		}
		totalEmissions += tons
	}

	totalPathways := 0.0
	for _, e := range report.PathwaysEntries {
		totalPathways += pathwaysTotalRaw(PathwaysInput{
			EvCount: e.EvCount,
			ReMW:    e.ReMW,
			RePct:   e.RePct,
			McCH4:   e.McCH4,
			VamCH4:  e.VamCH4,
		})
	}

	totalOffsets := 0.0
	for _, e := range report.OffsetEntries {
		totalOffsets += offsetTotalRaw(OffsetInput{
			AreaHectares:    e.AreaHectares,
			TreesPerHectare: e.TreesPerHectare,
			Years:           e.Years,
			MarketRate:      e.MarketRate,
		})
	}

	net := totalEmissions - totalPathways - totalOffsets
	return &ReportSummary{
		ReportID:       report.ID,
		TotalEmissions: round4(totalEmissions),
		TotalPathways:  round4(totalPathways),
		TotalOffsets:   round4(totalOffsets),
		NetEmissions:   round4(net),
	}
}

// CacheLatestTotal кэширует последний валовый футпринт в Redis.
// Best-effort: дашборд использует его как fallback, когда сводка недоступна
func (rs *ReportService) CacheLatestTotal(summary *ReportSummary) {
	if rs.redisUtil == nil || summary == nil {
		return
	}
	if err := rs.redisUtil.Set("ecopath:footprint:total", fmt.Sprintf("%.4f", summary.TotalEmissions), 24*time.Hour); err != nil {
		log.Printf("⚠️ Ошибка кэширования футпринта в Redis: %v", err)
	}
}
