package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sanalas/distripos-api/internal/domain/money"
)

func TestRound_MitadHaciaArriba(t *testing.T) {
	assert.Equal(t, "10.13", money.Round(decimal.RequireFromString("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", money.Round(decimal.RequireFromString("10.124")).StringFixed(2))
}

func TestLineSubtotal_RedondeaUnaSolaVez(t *testing.T) {
	// 3 x 1166.665 = 3499.995 -> 3500.00
	got := money.LineSubtotal(decimal.RequireFromString("1166.665"), decimal.NewFromInt(3))
	assert.Equal(t, "3500.00", got.StringFixed(2))

	// Sumas repetidas de subtotales ya redondeados no acumulan deriva.
	sub := money.LineSubtotal(decimal.RequireFromString("0.335"), decimal.NewFromInt(1))
	total := decimal.Zero
	for i := 0; i < 100; i++ {
		total = total.Add(sub)
	}
	assert.Equal(t, "34.00", total.StringFixed(2))
}

func TestAverageCost_PromedioPonderado(t *testing.T) {
	// 10 uds a 100 + entran 10 uds a 200 -> costo 150
	got := money.AverageCost(10, decimal.NewFromInt(100), 10, decimal.NewFromInt(200))
	assert.True(t, got.Equal(decimal.NewFromInt(150)), "costo promedio: %s", got)
}

func TestAverageCost_SinExistencias(t *testing.T) {
	// Sin stock previo el costo es el de la entrada.
	got := money.AverageCost(0, decimal.Zero, 5, decimal.NewFromInt(80))
	assert.True(t, got.Equal(decimal.NewFromInt(80)))

	// Caso degenerado: nada entra y nada hay.
	assert.True(t, money.AverageCost(0, decimal.Zero, 0, decimal.Zero).IsZero())
}
