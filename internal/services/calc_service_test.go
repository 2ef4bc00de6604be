package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCalcService - сервис расчёта поверх дефолтных коэффициентов, без БД
func newTestCalcService() *CalcService {
	return NewCalcService(NewFactorService(nil, nil))
}

func TestAggregateEmptyActivities(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate(nil)
	require.ErrorIs(t, err, ErrNoActivities)
	assert.Nil(t, result)

	result, err = cs.Aggregate([]ActivityInput{})
	require.ErrorIs(t, err, ErrNoActivities)
	assert.Nil(t, result)
}

func TestAggregatePetrol(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate([]ActivityInput{
		{Activity: "haulage", FuelType: "petrol", Quantity: 10, Unit: "L"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// 10 L * 2.31 кг/L / 1000 = 0.0231 т
	assert.Equal(t, 0.0231, result.Items[0].Tons)
	assert.Equal(t, 0.0231, result.TotalTons)
	assert.False(t, result.Items[0].Unresolved)
}

func TestAggregateElectricityAlias(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate([]ActivityInput{
		{Activity: "ventilation", FuelType: "Electricity", Quantity: 100, Unit: "kWh"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// electricity -> grid: 100 кВтч * 0.75 кг/кВтч / 1000 = 0.075 т
	assert.Equal(t, "grid", result.Items[0].FuelType)
	assert.Equal(t, 0.075, result.Items[0].Tons)
}

func TestAggregateUnknownFuelTypeYieldsZero(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate([]ActivityInput{
		{Activity: "misc", FuelType: "unobtainium", Quantity: 500, Unit: "kg"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// Ненайденный код даёт 0 тонн и флаг unresolved, а не ошибку
	assert.Equal(t, 0.0, result.Items[0].Tons)
	assert.True(t, result.Items[0].Unresolved)
	assert.Equal(t, 0.0, result.TotalTons)
}

func TestAggregateMixedActivitiesSum(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate([]ActivityInput{
		{Activity: "haulage", FuelType: "diesel", Quantity: 100, Unit: "L"},
		{Activity: "heating", FuelType: "natural_gas", Quantity: 50, Unit: "m3"},
		{Activity: "ventilation", FuelType: "grid", Quantity: 1000, Unit: "kWh"},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	// 0.268 + 0.101 + 0.75 = 1.119
	assert.Equal(t, 0.268, result.Items[0].Tons)
	assert.Equal(t, 0.101, result.Items[1].Tons)
	assert.Equal(t, 0.75, result.Items[2].Tons)
	assert.Equal(t, 1.119, result.TotalTons)
}

func TestAggregateNaNAndInfClampedToZero(t *testing.T) {
	cs := newTestCalcService()

	result, err := cs.Aggregate([]ActivityInput{
		{Activity: "broken", FuelType: "petrol", Quantity: math.NaN(), Unit: "L"},
		{Activity: "broken", FuelType: "petrol", Quantity: math.Inf(1), Unit: "L"},
		{Activity: "ok", FuelType: "petrol", Quantity: 10, Unit: "L"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Items[0].Tons)
	assert.Equal(t, 0.0, result.Items[1].Tons)
	assert.Equal(t, 0.0231, result.Items[2].Tons)
	assert.Equal(t, 0.0231, result.TotalTons)
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "petrol", NormalizeCode("  Petrol "))
	assert.Equal(t, "grid", NormalizeCode("ELECTRICITY"))
	assert.Equal(t, "grid", NormalizeCode("grid"))
	assert.Equal(t, "", NormalizeCode("   "))
}
