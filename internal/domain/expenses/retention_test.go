package expenses_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/invetex/cortes-api/internal/domain/expenses"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func item(amount, pct, min string) expenses.RetentionItem {
	return expenses.RetentionItem{
		Amount:           d(amount),
		RetentionPercent: d(pct),
		RetentionMinimum: d(min),
	}
}

// Escenario de referencia: gasto de 1000.00 con retención 2.5% sobre montos
// imputados ≥ 100. Primera imputación de 400 → 10.00; con la segunda de 600 el
// total del pago pasa a 25.00.
func TestRetentionTotal_EscenarioPagoParcial(t *testing.T) {
	primera := expenses.RetentionTotal([]expenses.RetentionItem{
		item("400", "2.5", "100"),
	})
	assert.True(t, primera.Equal(d("10.00")), "2.5%% de 400 = 10.00, got %s", primera)

	total := expenses.RetentionTotal([]expenses.RetentionItem{
		item("400", "2.5", "100"),
		item("600", "2.5", "100"),
	})
	assert.True(t, total.Equal(d("25.00")), "2.5%% de 1000 = 25.00, got %s", total)
}

// Imputaciones por debajo del mínimo del tipo de gasto no retienen.
func TestRetentionTotal_MinimoExcluye(t *testing.T) {
	total := expenses.RetentionTotal([]expenses.RetentionItem{
		item("99.99", "2.5", "100"),
		item("100", "2.5", "100"), // exactamente en el mínimo: aplica
	})
	assert.True(t, total.Equal(d("2.50")), "solo la imputación de 100 retiene, got %s", total)
}

// El redondeo es half-up a 2 decimales, nunca bancario: 0.125 → 0.13.
func TestRetentionTotal_RedondeoHalfUp(t *testing.T) {
	// 12.50 × 1% = 0.125 → half-up 0.13 (bancario daría 0.12).
	total := expenses.RetentionTotal([]expenses.RetentionItem{
		item("12.50", "1", "0"),
	})
	assert.Equal(t, "0.13", total.StringFixed(2))

	// 11.50 × 1% = 0.115 → 0.12 (bancario también daría 0.12; el caso anterior
	// es el que separa ambas reglas).
	total = expenses.RetentionTotal([]expenses.RetentionItem{
		item("11.50", "1", "0"),
	})
	assert.Equal(t, "0.12", total.StringFixed(2))
}

// Porcentaje cero o negativo no retiene; lista vacía retiene cero.
func TestRetentionTotal_CasosBorde(t *testing.T) {
	assert.True(t, expenses.RetentionTotal(nil).IsZero())
	assert.True(t, expenses.RetentionTotal([]expenses.RetentionItem{
		item("1000", "0", "0"),
	}).IsZero())
}
