// Package orders implementa el ciclo de vida transaccional de pedidos de
// venta y compra: creación con snapshot de líneas y aplicación/reversa
// atómica del efecto sobre el stock al cruzar el estado cumplido.
package orders

import (
	"context"

	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

// TxRepos son los repositorios ligados a una misma transacción. Todo lo que
// se haga con ellos dentro de Run se confirma o revierte en bloque.
type TxRepos struct {
	SalesOrders    repository.OrderRepository
	PurchaseOrders repository.OrderRepository
	Products       repository.ProductRepository
}

// TxRunner ejecuta fn dentro de una transacción de base de datos. Si fn
// retorna error la transacción se revierte completa: un pedido jamás queda
// creado o cumplido con el stock a medio ajustar.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
