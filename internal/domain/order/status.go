// Package order contiene las reglas puras del ciclo de vida de pedidos:
// estados válidos, transiciones y el efecto de cada transición sobre el stock.
// La aplicación transaccional vive en internal/application/orders; aquí no hay
// side effects ni acceso a datos.
package order

import (
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
)

// Estados de pedido. Los valores se persisten tal cual en las tablas
// sales_orders/purchase_orders (contrato con el frontend existente):
// el estado cumplido es "Faturado" en ventas y "Recebido" en compras.
const (
	StatusPending   = "Pendente"
	StatusInvoiced  = "Faturado" // cumplido (ventas)
	StatusReceived  = "Recebido" // cumplido (compras)
	StatusCancelled = "Cancelado"
)

// FulfilledStatus devuelve el estado "cumplido" según el tipo de pedido.
func FulfilledStatus(kind string) string {
	if kind == entity.OrderKindPurchase {
		return StatusReceived
	}
	return StatusInvoiced
}

// IsFulfilled indica si el estado es el que afecta stock y reportes.
func IsFulfilled(kind, status string) bool {
	return status == FulfilledStatus(kind)
}

// ValidStatus indica si el estado existe para el tipo de pedido dado.
func ValidStatus(kind, status string) bool {
	switch status {
	case StatusPending, StatusCancelled:
		return true
	case StatusInvoiced:
		return kind == entity.OrderKindSales
	case StatusReceived:
		return kind == entity.OrderKindPurchase
	}
	return false
}

// CanTransition valida una transición de estado:
//
//	Pendente  → {cumplido, Cancelado}
//	cumplido  → {Cancelado}
//	Cancelado → (terminal)
//
// Reaplicar el mismo estado es un no-op válido (sin efectos).
func CanTransition(kind, from, to string) bool {
	if !ValidStatus(kind, from) || !ValidStatus(kind, to) {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case StatusPending:
		return to == FulfilledStatus(kind) || to == StatusCancelled
	case FulfilledStatus(kind):
		return to == StatusCancelled
	}
	return false
}

// StockDelta devuelve el efecto sobre el stock de un producto al cruzar la
// frontera del estado cumplido. Positivo = entra stock, negativo = sale.
// Solo los bordes que entran o salen de "cumplido" tienen efecto:
//
//	Pendente → cumplido   aplica el delta del pedido
//	cumplido → Cancelado  lo revierte exactamente
//	Pendente → Cancelado  cero
//	mismo estado          cero
func StockDelta(kind, from, to string, quantity int64) int64 {
	if from == to {
		return 0
	}
	sign := int64(0)
	fulfilled := FulfilledStatus(kind)
	switch {
	case to == fulfilled && from != fulfilled:
		sign = 1 // entra a cumplido: aplicar
	case from == fulfilled && to != fulfilled:
		sign = -1 // sale de cumplido: revertir
	default:
		return 0
	}
	// Ventas descuentan stock al cumplirse; compras lo suman.
	if kind == entity.OrderKindSales {
		sign = -sign
	}
	return sign * quantity
}

// Transition valida y resuelve una transición; retorna ErrInvalidTransition
// si el borde no está permitido. applied indica si hubo cambio real de estado
// (false cuando from == to, el no-op del contrato).
func Transition(kind, from, to string) (applied bool, err error) {
	if !CanTransition(kind, from, to) {
		return false, domain.ErrInvalidTransition
	}
	return from != to, nil
}
