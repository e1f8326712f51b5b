package stocks_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invetex/cortes-api/internal/application/stocks"
	"github.com/invetex/cortes-api/internal/domain"
	"github.com/invetex/cortes-api/internal/domain/entity"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreateSnapshot_CargaInicialConEvento(t *testing.T) {
	h := newHarness()
	h.store.addProduct("p1")

	snap, err := h.snapshots.CreateSnapshot(context.Background(), stocks.CreateSnapshotInput{
		ProductID:       "p1",
		InitialQuantity: d("10.5"),
		Actor:           "u1",
	})
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.True(t, snap.Quantity.Equal(d("10.5")))
	assert.True(t, snap.Audit.Active)

	// La carga inicial queda en el libro como evento INITIAL.
	events, err := h.eventRepo.ListByProductStock(snap.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.EventTypeInitial, events[0].EventType)
	assert.True(t, events[0].QuantityChange.Equal(d("10.5")))

	// Cantidad > 0 → el producto queda activo.
	p := h.store.products["p1"]
	assert.True(t, p.Audit.Active)
}

func TestCreateSnapshot_CantidadCeroSinEvento(t *testing.T) {
	h := newHarness()
	h.store.addProduct("p1")

	snap, err := h.snapshots.CreateSnapshot(context.Background(), stocks.CreateSnapshotInput{
		ProductID:       "p1",
		InitialQuantity: decimal.Zero,
		Actor:           "u1",
	})
	require.NoError(t, err)
	assert.True(t, snap.Quantity.IsZero())

	events, err := h.eventRepo.ListByProductStock(snap.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, events, "cantidad cero no genera evento INITIAL")

	// Cantidad cero → el sincronizador desactiva el producto.
	assert.False(t, h.store.products["p1"].Audit.Active)
}

func TestCreateSnapshot_Validaciones(t *testing.T) {
	h := newHarness()
	h.store.addProduct("p1")
	h.store.addSubproduct("sp1", "p1")
	ctx := context.Background()

	// Cantidad inicial negativa.
	_, err := h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		ProductID: "p2-solo", InitialQuantity: d("-1"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNegativeQuantity)

	// Ningún destino, o ambos.
	_, err = h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{InitialQuantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrAmbiguousTarget)
	_, err = h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		ProductID: "p1", SubproductID: "sp1", InitialQuantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrAmbiguousTarget)

	// Producto con subproductos: el stock se lleva por subproducto.
	_, err = h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		ProductID: "p1", InitialQuantity: d("1"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrHasSubproducts)

	// Entidad inexistente.
	_, err = h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		ProductID: "no-existe", InitialQuantity: d("1"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateSnapshot_DuplicadoRechazado(t *testing.T) {
	h := newHarness()
	h.store.addSubproduct("sp1", "p1")
	ctx := context.Background()

	_, err := h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		SubproductID: "sp1", InitialQuantity: d("5"), Actor: "u1",
	})
	require.NoError(t, err)

	_, err = h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		SubproductID: "sp1", InitialQuantity: d("5"), Actor: "u1",
	})
	assert.ErrorIs(t, err, domain.ErrSnapshotExists)
}

// Doble creación concurrente: el índice único del repositorio cierra la ventana
// que el chequeo previo deja abierta. Exactamente una gana.
func TestCreateSnapshot_CarreraDobleCreacion(t *testing.T) {
	h := newHarness()
	h.store.addProduct("p1")

	const intentos = 8
	var wg sync.WaitGroup
	errs := make([]error, intentos)
	for i := 0; i < intentos; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = h.snapshots.CreateSnapshot(context.Background(), stocks.CreateSnapshotInput{
				ProductID: "p1", InitialQuantity: d("3"), Actor: "u1",
			})
		}(i)
	}
	wg.Wait()

	exitos := 0
	for _, err := range errs {
		if err == nil {
			exitos++
		} else {
			assert.ErrorIs(t, err, domain.ErrSnapshotExists)
		}
	}
	assert.Equal(t, 1, exitos, "exactamente una creación debe ganar")
}

func TestSoftDelete_ConservaCantidad(t *testing.T) {
	h := newHarness()
	h.store.addProduct("p1")
	ctx := context.Background()

	snap, err := h.snapshots.CreateSnapshot(ctx, stocks.CreateSnapshotInput{
		ProductID: "p1", InitialQuantity: d("42"), Actor: "u1",
	})
	require.NoError(t, err)

	require.NoError(t, h.snapshots.SoftDelete(ctx, snap.ID, "u2"))

	stored := h.store.snapshots[snap.ID]
	assert.False(t, stored.Audit.Active)
	assert.True(t, stored.Quantity.Equal(d("42")), "la baja lógica no toca la cantidad")
	assert.Equal(t, "u2", stored.Audit.DeletedBy)

	// Segunda baja: ya no está activo.
	assert.ErrorIs(t, h.snapshots.SoftDelete(ctx, snap.ID, "u2"), domain.ErrNotFound)

	// El snapshot dado de baja deja de resolverse por entidad.
	got, err := h.snapshots.GetByProduct("p1")
	require.NoError(t, err)
	assert.Nil(t, got)
}
