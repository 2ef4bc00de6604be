package services

import (
	"errors"
	"math"
)

// ErrNoActivities возвращается при пустом списке активностей
var ErrNoActivities = errors.New("No activities provided")

// ActivityInput - сырые данные об одной активности (топливо/электроэнергия)
type ActivityInput struct {
	Activity string  `json:"activity"`
	FuelType string  `json:"fuelType"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// ActivityResult - результат расчёта по одной активности.
// Unresolved выставляется, когда код не удалось разрешить и тонны занулены
type ActivityResult struct {
	Activity   string  `json:"activity"`
	FuelType   string  `json:"fuelType"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	Tons       float64 `json:"tons"`
	Unresolved bool    `json:"unresolved,omitempty"`
}

// CalcResult - агрегированный футпринт по списку активностей
type CalcResult struct {
	TotalTons float64          `json:"totalTons"`
	Items     []ActivityResult `json:"items"`
}

// CalcService вычисляет углеродный футпринт по потреблению топлива и электроэнергии
type CalcService struct {
	factors *FactorService
}

// NewCalcService создает новый сервис расчёта
func NewCalcService(factors *FactorService) *CalcService {
	return &CalcService{factors: factors}
}

// Aggregate считает тонны CO2e по каждой активности и сумму.
// Коэффициенты хранятся в кг на единицу, поэтому делим на 1000.
// NaN/Inf зануляются - best-effort политика вместо ошибки,
// итоговые суммы на неё опираются
func (cs *CalcService) Aggregate(activities []ActivityInput) (*CalcResult, error) {
	if len(activities) == 0 {
		return nil, ErrNoActivities
	}

	results := make([]ActivityResult, 0, len(activities))
	total := 0.0

	for _, a := range activities {
		code := NormalizeCode(a.FuelType)
		factor, resolved := cs.factors.ResolveDetailed(code)

		tons := a.Quantity * factor / 1000.0
		if math.IsNaN(tons) || math.IsInf(tons, 0) {
			tons = 0
		}
		total += tons

		results = append(results, ActivityResult{
			Activity:   a.Activity,
			FuelType:   code,
			Quantity:   a.Quantity,
			Unit:       a.Unit,
			Tons:       round4(tons),
			Unresolved: !resolved,
		})
	}

	return &CalcResult{
		TotalTons: round4(total),
		Items:     results,
	}, nil
}

// round4 округляет до 4 знаков (тонны CO2e в итогах)
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// round2 округляет до 2 знаков (покомпонентные результаты)
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
