package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ecopath/server/internal/models"
)

// newTestReportService - сервис отчётов без БД и Redis.
// summarize не ходит в БД: записи передаются прямо в структуре отчёта
func newTestReportService() *ReportService {
	return NewReportService(nil, NewFactorService(nil, nil), nil)
}

func TestSummarizeEmptyReport(t *testing.T) {
	rs := newTestReportService()

	summary := rs.summarize(&models.Report{ID: "r1"})

	assert.Equal(t, "r1", summary.ReportID)
	assert.Equal(t, 0.0, summary.TotalEmissions)
	assert.Equal(t, 0.0, summary.TotalPathways)
	assert.Equal(t, 0.0, summary.TotalOffsets)
	assert.Equal(t, 0.0, summary.NetEmissions)
}

func TestSummarizeMixedEntries(t *testing.T) {
	rs := newTestReportService()

	summary := rs.summarize(&models.Report{
		ID: "r1",
		CalcEntries: []models.CalcEntry{
			{FuelType: "petrol", Quantity: 10},
		},
		PathwaysEntries: []models.PathwaysEntry{
			{EvCount: 1},
		},
		OffsetEntries: []models.OffsetEntry{
			{AreaHectares: 0, TreesPerHectare: 100, Years: 5},
		},
	})

	// Выбросы: 10 * 2.31 / 1000 = 0.0231 т
	// Снижения: 1 EV * 4 = 4 т
	// Офсеты: 0 га -> 0 т
	// Нетто: 0.0231 - 4 - 0 = -3.9769 т
	assert.Equal(t, 0.0231, summary.TotalEmissions)
	assert.Equal(t, 4.0, summary.TotalPathways)
	assert.Equal(t, 0.0, summary.TotalOffsets)
	assert.Equal(t, -3.9769, summary.NetEmissions)
}

func TestSummarizeSumsRawComponentsBeforeRounding(t *testing.T) {
	rs := newTestReportService()

	// Две записи по ~0.00005 т: при округлении каждой по отдельности
	// сумма была бы 0, но суммируются неокругленные значения
	summary := rs.summarize(&models.Report{
		ID: "r1",
		CalcEntries: []models.CalcEntry{
			{FuelType: "grid", Quantity: 0.0666},
			{FuelType: "grid", Quantity: 0.0666},
		},
	})

	// 2 * (0.0666 * 0.75 / 1000) = 0.0000999 -> округление только итога
	assert.Equal(t, 0.0001, summary.TotalEmissions)
}

func TestSummarizeUnknownFuelTypeContributesZero(t *testing.T) {
	rs := newTestReportService()

	summary := rs.summarize(&models.Report{
		ID: "r1",
		CalcEntries: []models.CalcEntry{
			{FuelType: "unobtainium", Quantity: 1000},
			{FuelType: "diesel", Quantity: 100},
		},
	})

	assert.Equal(t, 0.268, summary.TotalEmissions)
}

func TestSummarizeMultiplePathwaysEntriesAccumulate(t *testing.T) {
	rs := newTestReportService()

	summary := rs.summarize(&models.Report{
		ID: "r1",
		PathwaysEntries: []models.PathwaysEntry{
			{EvCount: 2},
			{McCH4: 1},
		},
		OffsetEntries: []models.OffsetEntry{
			{AreaHectares: 10, TreesPerHectare: 100, Years: 1},
			{AreaHectares: 10, TreesPerHectare: 100, Years: 1},
		},
	})

	// Снижения: 2*4 + 1*27 = 35 т; офсеты: 2 * 22 = 44 т
	assert.Equal(t, 35.0, summary.TotalPathways)
	assert.Equal(t, 44.0, summary.TotalOffsets)
	assert.Equal(t, -79.0, summary.NetEmissions)
}
