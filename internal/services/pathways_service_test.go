package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePathwaysEV(t *testing.T) {
	result := ComputePathways(PathwaysInput{EvCount: 10})

	// 10 EV * 4 т/год = 40 т
	assert.Equal(t, 40.0, result.EvTons)
	assert.Equal(t, 40.0, result.TotalTons)
	assert.Equal(t, 0.0, result.ReTons)
	assert.Equal(t, 0.0, result.McTons)
	assert.Equal(t, 0.0, result.VamTons)
}

func TestComputePathwaysRenewables(t *testing.T) {
	result := ComputePathways(PathwaysInput{ReMW: 1, RePct: 100})

	// 1 МВт * 8760 ч * 0.35 = 3066 МВтч/год; 3066 * 0.75 = 2299.5 т
	assert.Equal(t, 2299.5, result.ReTons)
	assert.Equal(t, 2299.5, result.TotalTons)
}

func TestComputePathwaysRenewablesPartialShare(t *testing.T) {
	result := ComputePathways(PathwaysInput{ReMW: 2, RePct: 50})

	// 2 МВт * 8760 * 0.35 * 0.5 = 3066 МВтч; * 0.75 = 2299.5 т
	assert.Equal(t, 2299.5, result.ReTons)
}

func TestComputePathwaysMethane(t *testing.T) {
	result := ComputePathways(PathwaysInput{McCH4: 10, VamCH4: 5})

	// 10 т CH4 * 27 + 5 т CH4 * 20 = 270 + 100 = 370 т
	assert.Equal(t, 270.0, result.McTons)
	assert.Equal(t, 100.0, result.VamTons)
	assert.Equal(t, 370.0, result.TotalTons)
}

func TestComputePathwaysNegativeInputsClamped(t *testing.T) {
	result := ComputePathways(PathwaysInput{
		EvCount: -5,
		ReMW:    -1,
		RePct:   -50,
		McCH4:   -10,
		VamCH4:  -3,
	})

	assert.Equal(t, 0.0, result.EvTons)
	assert.Equal(t, 0.0, result.ReTons)
	assert.Equal(t, 0.0, result.McTons)
	assert.Equal(t, 0.0, result.VamTons)
	assert.Equal(t, 0.0, result.TotalTons)
}

func TestComputePathwaysPercentCappedAt100(t *testing.T) {
	capped := ComputePathways(PathwaysInput{ReMW: 1, RePct: 250})
	full := ComputePathways(PathwaysInput{ReMW: 1, RePct: 100})

	assert.Equal(t, full.ReTons, capped.ReTons)
}

func TestComputePathwaysZeroInput(t *testing.T) {
	result := ComputePathways(PathwaysInput{})

	assert.Equal(t, 0.0, result.TotalTons)
}
