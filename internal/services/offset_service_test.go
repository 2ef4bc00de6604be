package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeOffsetsBasic(t *testing.T) {
	result := ComputeOffsets(OffsetInput{
		AreaHectares:    10,
		TreesPerHectare: 100,
		Years:           5,
		MarketRate:      50,
	})

	// 1000 деревьев * 0.022 т/год = 22 т/год; за 5 лет 110 т; 110 кредитов * 50 = 5500
	assert.Equal(t, 22.0, result.AnnualTons)
	assert.Equal(t, 110.0, result.TotalTons)
	assert.Equal(t, 110.0, result.Credits)
	assert.Equal(t, 5500.0, result.Value)
}

func TestComputeOffsetsYearsFloorAtOne(t *testing.T) {
	zero := ComputeOffsets(OffsetInput{AreaHectares: 10, TreesPerHectare: 100, Years: 0})
	negative := ComputeOffsets(OffsetInput{AreaHectares: 10, TreesPerHectare: 100, Years: -3})
	one := ComputeOffsets(OffsetInput{AreaHectares: 10, TreesPerHectare: 100, Years: 1})

	// Срок меньше года трактуется как один год
	assert.Equal(t, one.TotalTons, zero.TotalTons)
	assert.Equal(t, one.TotalTons, negative.TotalTons)
	assert.Equal(t, 22.0, one.TotalTons)
}

func TestComputeOffsetsNegativeInputsClamped(t *testing.T) {
	result := ComputeOffsets(OffsetInput{
		AreaHectares:    -10,
		TreesPerHectare: -100,
		Years:           5,
		MarketRate:      -50,
	})

	assert.Equal(t, 0.0, result.AnnualTons)
	assert.Equal(t, 0.0, result.TotalTons)
	assert.Equal(t, 0.0, result.Credits)
	assert.Equal(t, 0.0, result.Value)
}

func TestComputeOffsetsZeroMarketRate(t *testing.T) {
	result := ComputeOffsets(OffsetInput{
		AreaHectares:    1,
		TreesPerHectare: 500,
		Years:           2,
	})

	// 500 деревьев * 0.022 = 11 т/год; за 2 года 22 т; кредиты есть, денег нет
	assert.Equal(t, 11.0, result.AnnualTons)
	assert.Equal(t, 22.0, result.TotalTons)
	assert.Equal(t, 0.0, result.Value)
}
