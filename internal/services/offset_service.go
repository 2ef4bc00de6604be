package services

// TreeCO2TonPerYear - секвестрация: тонн CO2 на дерево в год (22 кг)
const TreeCO2TonPerYear = 0.022

// OffsetInput - сырые входы офсетов (лесопосадки + карбоновые кредиты)
type OffsetInput struct {
	AreaHectares    float64 `json:"areaHectares"`
	TreesPerHectare float64 `json:"treesPerHectare"`
	Years           float64 `json:"years"`
	MarketRate      float64 `json:"marketRate"`
}

// OffsetResult - секвестрированные тонны и денежная оценка кредитов,
// округлены до 2 знаков
type OffsetResult struct {
	AnnualTons float64 `json:"annualTons"`
	TotalTons  float64 `json:"totalTons"`
	Credits    float64 `json:"credits"`
	Value      float64 `json:"value"`
}

// ComputeOffsets считает секвестрацию и стоимость кредитов.
// Площадь, плотность и цена зажимаются в >= 0, срок - минимум 1 год.
// Один кредит равен одной тонне, курс фиксированный
func ComputeOffsets(in OffsetInput) OffsetResult {
	trees := clampNonNeg(in.AreaHectares) * clampNonNeg(in.TreesPerHectare)
	annualTons := trees * TreeCO2TonPerYear
	totalOverYears := annualTons * clampYears(in.Years)
	credits := totalOverYears
	value := credits * clampNonNeg(in.MarketRate)

	return OffsetResult{
		AnnualTons: round2(annualTons),
		TotalTons:  round2(totalOverYears),
		Credits:    round2(credits),
		Value:      round2(value),
	}
}

// offsetTotalRaw - неокругленные секвестрированные тонны по одной записи
func offsetTotalRaw(in OffsetInput) float64 {
	trees := clampNonNeg(in.AreaHectares) * clampNonNeg(in.TreesPerHectare)
	return trees * TreeCO2TonPerYear * clampYears(in.Years)
}

func clampYears(years float64) float64 {
	if years < 1 {
		return 1
	}
	return years
}
