// Package ledger reconstruye el historial de movimientos de stock de un
// producto a partir del conjunto completo de pedidos. Es una función pura:
// no persiste nada y el historial es re-derivable en cualquier momento desde
// los pedidos más el stock actual.
package ledger

import (
	"sort"
	"time"

	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
)

// Direcciones de movimiento.
const (
	DirectionIn  = "in"  // entrada (compra recibida)
	DirectionOut = "out" // salida (venta facturada)
)

// Movement es un evento sintético de stock, derivado de una línea de pedido
// cumplido. Balance es el saldo acumulado después de aplicar el movimiento.
type Movement struct {
	Date      time.Time
	Direction string
	Document  string // número del pedido origen (PV-xxxxx / PC-xxxxx)
	Quantity  int64  // siempre positivo; Direction indica el signo
	Balance   int64
}

// History es el resultado de la reconstrucción para un producto.
// Invariante: InitialBalance + Σ(deltas) == FinalBalance == stock almacenado.
type History struct {
	ProductID      string
	InitialBalance int64
	FinalBalance   int64
	Movements      []Movement
}

// evento interno previo al cálculo de saldos.
type event struct {
	date  time.Time
	doc   string
	delta int64
	seq   int64 // consecutivo de inserción del pedido: desempate estable
}

// Reconstruct arma el historial cronológico de movimientos del producto.
//
// Algoritmo: se toman las líneas del producto en compras Recebido (+cantidad)
// y ventas Faturado (−cantidad); se ordenan por fecha ascendente con desempate
// por consecutivo de inserción y luego por número de documento (los pedidos
// del mismo día no tienen orden definido en origen; el consecutivo fija un
// orden determinista); initialBalance = stockActual − Σ(deltas); se recorre
// acumulando el saldo.
func Reconstruct(product *entity.Product, salesOrders, purchaseOrders []*entity.Order) History {
	var events []event

	collect := func(orders []*entity.Order) {
		for _, o := range orders {
			if !order.IsFulfilled(o.Kind, o.Status) {
				continue
			}
			for _, it := range o.Items {
				if it.ProductID != product.ID {
					continue
				}
				delta := it.Quantity
				if o.Kind == entity.OrderKindSales {
					delta = -delta
				}
				events = append(events, event{date: o.Date, doc: o.Number, delta: delta, seq: o.Seq})
			}
		}
	}
	collect(purchaseOrders)
	collect(salesOrders)

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.seq != b.seq {
			return a.seq < b.seq
		}
		return a.doc < b.doc
	})

	var sum int64
	for _, e := range events {
		sum += e.delta
	}
	initial := product.Stock - sum

	movements := make([]Movement, 0, len(events))
	balance := initial
	for _, e := range events {
		balance += e.delta
		m := Movement{Date: e.date, Document: e.doc, Balance: balance}
		if e.delta >= 0 {
			m.Direction = DirectionIn
			m.Quantity = e.delta
		} else {
			m.Direction = DirectionOut
			m.Quantity = -e.delta
		}
		movements = append(movements, m)
	}

	return History{
		ProductID:      product.ID,
		InitialBalance: initial,
		FinalBalance:   balance,
		Movements:      movements,
	}
}
