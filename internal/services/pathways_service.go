package services

// Константы методики снижения выбросов.
// Значения согласованы с дефолтной таблицей коэффициентов
const (
	EVDisplacedTonsPerYear  = 4.0  // тонн CO2e в год на один электромобиль
	RenewableCapacityFactor = 0.35 // коэффициент использования мощности ВИЭ
	GridTonPerMWh           = 0.75 // тонн CO2e на МВтч сетевой генерации
	HoursPerYear            = 8760 // часов в году (аннуализация мощности)
	GWPCH4Capture           = 27.0 // GWP метана при захвате/факельном сжигании
	GWPCH4VAM               = 20.0 // консервативный GWP для окисления VAM
)

// PathwaysInput - сырые входы стратегий снижения.
// Отсутствующее или невалидное число трактуется как 0
type PathwaysInput struct {
	EvCount float64 `json:"evCount"`
	ReMW    float64 `json:"reMW"`
	RePct   float64 `json:"rePct"`
	McCH4   float64 `json:"mcCH4"`
	VamCH4  float64 `json:"vamCH4"`
}

// PathwaysResult - избегнутые выбросы по компонентам, округлены до 2 знаков
type PathwaysResult struct {
	EvTons    float64 `json:"evTons"`
	ReTons    float64 `json:"reTons"`
	McTons    float64 `json:"mcTons"`
	VamTons   float64 `json:"vamTons"`
	TotalTons float64 `json:"totalTons"`
}

// ComputePathways считает избегнутые тонны CO2e по стратегиям снижения.
// Все входы зажимаются в >= 0, процент дополнительно в [0, 100].
// Ошибочных исходов нет
func ComputePathways(in PathwaysInput) PathwaysResult {
	evTons, reTons, mcTons, vamTons := pathwaysComponents(in)
	total := evTons + reTons + mcTons + vamTons

	return PathwaysResult{
		EvTons:    round2(evTons),
		ReTons:    round2(reTons),
		McTons:    round2(mcTons),
		VamTons:   round2(vamTons),
		TotalTons: round2(total),
	}
}

// pathwaysComponents возвращает неокругленные компоненты.
// Сводка отчёта суммирует именно их, округляя только итог
func pathwaysComponents(in PathwaysInput) (evTons, reTons, mcTons, vamTons float64) {
	evTons = clampNonNeg(in.EvCount) * EVDisplacedTonsPerYear

	pct := clampNonNeg(in.RePct)
	if pct > 100 {
		pct = 100
	}
	mwhYear := clampNonNeg(in.ReMW) * HoursPerYear * RenewableCapacityFactor * pct / 100.0
	reTons = mwhYear * GridTonPerMWh

	mcTons = clampNonNeg(in.McCH4) * GWPCH4Capture
	vamTons = clampNonNeg(in.VamCH4) * GWPCH4VAM
	return
}

// pathwaysTotalRaw - неокругленная сумма избегнутых тонн по одной записи
func pathwaysTotalRaw(in PathwaysInput) float64 {
	evTons, reTons, mcTons, vamTons := pathwaysComponents(in)
	return evTons + reTons + mcTons + vamTons
}

func clampNonNeg(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
