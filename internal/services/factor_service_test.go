package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ecopath/server/internal/models"
)

func TestResolveDefaultsOnly(t *testing.T) {
	fs := NewFactorService(nil, nil)

	factor, ok := fs.ResolveDetailed("petrol")
	assert.True(t, ok)
	assert.Equal(t, 2.31, factor)

	factor, ok = fs.ResolveDetailed("diesel")
	assert.True(t, ok)
	assert.Equal(t, 2.68, factor)

	// electricity разрешается через алиас grid
	factor, ok = fs.ResolveDetailed("Electricity")
	assert.True(t, ok)
	assert.Equal(t, 0.75, factor)
}

func TestResolveUnknownCode(t *testing.T) {
	fs := NewFactorService(nil, nil)

	factor, ok := fs.ResolveDetailed("unobtainium")
	assert.False(t, ok)
	assert.Equal(t, 0.0, factor)

	factor, ok = fs.ResolveDetailed("")
	assert.False(t, ok)
	assert.Equal(t, 0.0, factor)
}

func TestResolveDBRowOverridesDefault(t *testing.T) {
	fs := NewFactorService(nil, nil)
	yearAgo := time.Now().UTC().AddDate(-1, 0, 0)

	fs.rebuild([]models.EmissionFactor{
		{Code: "petrol", Unit: "kg/L", Factor: 2.5, EffectiveFrom: yearAgo},
	})

	// Строка из БД перекрывает дефолт 2.31
	assert.Equal(t, 2.5, fs.Resolve("petrol"))
	// Не перекрытые коды по-прежнему разрешаются дефолтами
	assert.Equal(t, 2.68, fs.Resolve("diesel"))
}

func TestResolveLatestEffectiveRowWins(t *testing.T) {
	fs := NewFactorService(nil, nil)
	now := time.Now().UTC()

	fs.rebuild([]models.EmissionFactor{
		{Code: "grid", Unit: "kg/kWh", Factor: 0.9, EffectiveFrom: now.AddDate(-2, 0, 0)},
		{Code: "grid", Unit: "kg/kWh", Factor: 0.6, EffectiveFrom: now.AddDate(0, -1, 0)},
		{Code: "grid", Unit: "kg/kWh", Factor: 0.8, EffectiveFrom: now.AddDate(-1, 0, 0)},
	})

	// Побеждает строка с максимальным EffectiveFrom <= now, порядок вставки не важен
	assert.Equal(t, 0.6, fs.Resolve("grid"))
}

func TestResolveFutureRowIgnored(t *testing.T) {
	fs := NewFactorService(nil, nil)
	now := time.Now().UTC()

	fs.rebuild([]models.EmissionFactor{
		{Code: "diesel", Unit: "kg/L", Factor: 9.99, EffectiveFrom: now.AddDate(1, 0, 0)},
	})

	// Строка с будущей датой не применяется: откатываемся к дефолту
	assert.Equal(t, 2.68, fs.Resolve("diesel"))
}

func TestRebuildNormalizesCodes(t *testing.T) {
	fs := NewFactorService(nil, nil)
	yearAgo := time.Now().UTC().AddDate(-1, 0, 0)

	fs.rebuild([]models.EmissionFactor{
		{Code: "  Electricity ", Unit: "kg/kWh", Factor: 0.5, EffectiveFrom: yearAgo},
	})

	assert.Equal(t, 0.5, fs.Resolve("grid"))
	assert.Equal(t, 0.5, fs.Resolve("electricity"))
}

func TestRebuildReplacesSnapshot(t *testing.T) {
	fs := NewFactorService(nil, nil)
	yearAgo := time.Now().UTC().AddDate(-1, 0, 0)

	fs.rebuild([]models.EmissionFactor{
		{Code: "petrol", Unit: "kg/L", Factor: 3.0, EffectiveFrom: yearAgo},
	})
	assert.Equal(t, 3.0, fs.Resolve("petrol"))

	// Пустой rebuild сбрасывает оверрайды, дефолты остаются
	fs.rebuild(nil)
	assert.Equal(t, 2.31, fs.Resolve("petrol"))
}
