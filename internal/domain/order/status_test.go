package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
)

func TestFulfilledStatus_PorTipoDePedido(t *testing.T) {
	assert.Equal(t, order.StatusInvoiced, order.FulfilledStatus(entity.OrderKindSales))
	assert.Equal(t, order.StatusReceived, order.FulfilledStatus(entity.OrderKindPurchase))
}

func TestCanTransition_BordesValidos(t *testing.T) {
	cases := []struct {
		kind, from, to string
		ok             bool
	}{
		{entity.OrderKindSales, order.StatusPending, order.StatusInvoiced, true},
		{entity.OrderKindSales, order.StatusPending, order.StatusCancelled, true},
		{entity.OrderKindSales, order.StatusInvoiced, order.StatusCancelled, true},
		{entity.OrderKindPurchase, order.StatusPending, order.StatusReceived, true},
		{entity.OrderKindPurchase, order.StatusReceived, order.StatusCancelled, true},

		// Cancelado es terminal
		{entity.OrderKindSales, order.StatusCancelled, order.StatusPending, false},
		{entity.OrderKindSales, order.StatusCancelled, order.StatusInvoiced, false},
		// No hay vuelta atrás desde cumplido
		{entity.OrderKindSales, order.StatusInvoiced, order.StatusPending, false},
		{entity.OrderKindPurchase, order.StatusReceived, order.StatusPending, false},
		// Estados cruzados entre tipos
		{entity.OrderKindSales, order.StatusPending, order.StatusReceived, false},
		{entity.OrderKindPurchase, order.StatusPending, order.StatusInvoiced, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, order.CanTransition(tc.kind, tc.from, tc.to),
			"%s: %s -> %s", tc.kind, tc.from, tc.to)
	}
}

func TestCanTransition_MismoEstadoEsNoOp(t *testing.T) {
	applied, err := order.Transition(entity.OrderKindSales, order.StatusInvoiced, order.StatusInvoiced)
	require.NoError(t, err)
	assert.False(t, applied, "reaplicar el mismo estado no debe producir cambio")
}

func TestTransition_InvalidaRetornaError(t *testing.T) {
	_, err := order.Transition(entity.OrderKindSales, order.StatusCancelled, order.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestStockDelta_VentaCumplidaDescuenta(t *testing.T) {
	delta := order.StockDelta(entity.OrderKindSales, order.StatusPending, order.StatusInvoiced, 30)
	assert.Equal(t, int64(-30), delta)
}

func TestStockDelta_CompraCumplidaSuma(t *testing.T) {
	delta := order.StockDelta(entity.OrderKindPurchase, order.StatusPending, order.StatusReceived, 50)
	assert.Equal(t, int64(50), delta)
}

func TestStockDelta_CancelarCumplidoRevierteExacto(t *testing.T) {
	aplicado := order.StockDelta(entity.OrderKindSales, order.StatusPending, order.StatusInvoiced, 30)
	revertido := order.StockDelta(entity.OrderKindSales, order.StatusInvoiced, order.StatusCancelled, 30)
	assert.Equal(t, int64(0), aplicado+revertido, "cancelar debe revertir exactamente el delta aplicado")

	aplicado = order.StockDelta(entity.OrderKindPurchase, order.StatusPending, order.StatusReceived, 50)
	revertido = order.StockDelta(entity.OrderKindPurchase, order.StatusReceived, order.StatusCancelled, 50)
	assert.Equal(t, int64(0), aplicado+revertido)
}

func TestStockDelta_CancelarPendienteNoTocaStock(t *testing.T) {
	delta := order.StockDelta(entity.OrderKindSales, order.StatusPending, order.StatusCancelled, 30)
	assert.Equal(t, int64(0), delta)
}

func TestStockDelta_MismoEstadoCero(t *testing.T) {
	delta := order.StockDelta(entity.OrderKindSales, order.StatusInvoiced, order.StatusInvoiced, 30)
	assert.Equal(t, int64(0), delta)
}
