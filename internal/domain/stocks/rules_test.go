package stocks_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
	"github.com/invetex/cortes-api/internal/domain/stocks"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Tabla tipo de evento × signo del cambio: salidas negativas, entradas
// positivas, cero siempre rechazado.
func TestValidateChange_Tabla(t *testing.T) {
	cases := []struct {
		name      string
		eventType string
		change    string
		wantErr   error
	}{
		{"initial positivo ok", entity.EventTypeInitial, "10", nil},
		{"adjust_in positivo ok", entity.EventTypeAdjustIn, "0.001", nil},
		{"transfer_in positivo ok", entity.EventTypeTransferIn, "5", nil},
		{"sale_out negativo ok", entity.EventTypeSaleOut, "-3", nil},
		{"cut_out negativo ok", entity.EventTypeCutOut, "-1.5", nil},
		{"adjust_out negativo ok", entity.EventTypeAdjustOut, "-2", nil},
		{"transfer_out negativo ok", entity.EventTypeTransferOut, "-4", nil},

		{"sale_out positivo rechazado", entity.EventTypeSaleOut, "3", domain.ErrSignMismatch},
		{"cut_out positivo rechazado", entity.EventTypeCutOut, "1", domain.ErrSignMismatch},
		{"adjust_in negativo rechazado", entity.EventTypeAdjustIn, "-1", domain.ErrSignMismatch},
		{"initial negativo rechazado", entity.EventTypeInitial, "-10", domain.ErrSignMismatch},

		{"cambio cero rechazado", entity.EventTypeAdjustIn, "0", domain.ErrZeroQuantityChange},
		{"tipo desconocido rechazado", "RECOUNT", "1", domain.ErrInvalidInput},
		{"tipo vacío rechazado", "", "1", domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := stocks.ValidateChange(tc.eventType, d(tc.change))
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

// La normalización de ajustes pone el signo según la dirección, sin importar el
// signo con el que llegue la cantidad.
func TestNormalizeAdjustment(t *testing.T) {
	eventType, change, err := stocks.NormalizeAdjustment(stocks.AdjustmentIngreso, d("7.25"))
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeAdjustIn, eventType)
	assert.True(t, change.Equal(d("7.25")))

	// Cantidad negativa en un ingreso: se toma la magnitud.
	eventType, change, err = stocks.NormalizeAdjustment(stocks.AdjustmentIngreso, d("-7.25"))
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeAdjustIn, eventType)
	assert.True(t, change.Equal(d("7.25")))

	eventType, change, err = stocks.NormalizeAdjustment(stocks.AdjustmentEgreso, d("3"))
	require.NoError(t, err)
	assert.Equal(t, entity.EventTypeAdjustOut, eventType)
	assert.True(t, change.Equal(d("-3")))

	_, _, err = stocks.NormalizeAdjustment(stocks.AdjustmentEgreso, d("0"))
	assert.ErrorIs(t, err, domain.ErrZeroQuantityChange)

	_, _, err = stocks.NormalizeAdjustment("traslado", d("1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAvailableToPromise(t *testing.T) {
	assert.True(t, stocks.AvailableToPromise(d("100"), d("30")).Equal(d("70")))
	// Sobre-reserva: el disponible puede ser negativo.
	assert.True(t, stocks.AvailableToPromise(d("10"), d("15")).Equal(d("-5")))
	assert.True(t, stocks.AvailableToPromise(d("10"), d("0")).Equal(d("10")))
}
