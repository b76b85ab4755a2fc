package ledger_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanalas/distripos-api/internal/domain"
	"github.com/sanalas/distripos-api/internal/domain/entity"
)

func TestTransferStock_MueveEntreBodegas(t *testing.T) {
	s := newMemStore()
	seedProduct(s, prodArroz, decimal.NewFromInt(1000))
	seedLevel(s, prodArroz, bodCentral, 10, 0)
	l := newLedger(s)

	inMov, err := l.TransferStock(context.Background(), prodArroz, bodCentral, bodNorte, decimal.NewFromInt(4), testUser)
	require.NoError(t, err)

	assert.EqualValues(t, 6, onHand(s, prodArroz, bodCentral))
	assert.EqualValues(t, 4, onHand(s, prodArroz, bodNorte))

	// Dos patas, mismo id de correlación, efecto neto cero.
	require.Len(t, s.movements, 2)
	out, in := s.movements[0], s.movements[1]
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, entity.MovementTypeIN, in.Type)
	assert.Equal(t, out.ReferenceID, in.ReferenceID)
	assert.NotEmpty(t, out.ReferenceID)
	assert.EqualValues(t, 0, out.Quantity+in.Quantity)
	assert.Equal(t, inMov.ID, in.ID)

	// La pata de entrada no lleva costo: el traslado no toca el promedio.
	assert.Nil(t, in.UnitCost)
	assert.True(t, s.products[prodArroz].Cost.Equal(decimal.NewFromInt(1000)))

	// El traslado mueve unidades entre bodegas, no cambia el total del producto.
	assert.EqualValues(t, 10, baseStock(s, prodArroz))
}

func TestTransferStock_OrigenInsuficiente_NadaQuedaEscrito(t *testing.T) {
	s := newMemStore()
	seedProduct(s, prodArroz, decimal.Zero)
	seedLevel(s, prodArroz, bodCentral, 3, 0)
	l := newLedger(s)

	_, err := l.TransferStock(context.Background(), prodArroz, bodCentral, bodNorte, decimal.NewFromInt(5), testUser)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ni la salida ni la entrada quedaron: el origen conserva su nivel y el
	// destino nunca existió.
	assert.EqualValues(t, 3, onHand(s, prodArroz, bodCentral))
	assert.EqualValues(t, 0, onHand(s, prodArroz, bodNorte))
	assert.Empty(t, s.movements)
}

func TestTransferStock_MismaBodegaRechazado(t *testing.T) {
	s := newMemStore()
	seedProduct(s, prodArroz, decimal.Zero)
	l := newLedger(s)

	_, err := l.TransferStock(context.Background(), prodArroz, bodCentral, bodCentral, decimal.NewFromInt(1), testUser)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransferStock_ProductoInexistente(t *testing.T) {
	s := newMemStore()
	l := newLedger(s)

	_, err := l.TransferStock(context.Background(), "no-existe", bodCentral, bodNorte, decimal.NewFromInt(1), testUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
