package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pedido. Determinan la tabla de persistencia, el estado "cumplido"
// y el signo del efecto sobre el stock.
const (
	OrderKindSales    = "sales"    // pedido de venta: cumplir descuenta stock
	OrderKindPurchase = "purchase" // pedido de compra: cumplir suma stock
)

// Order representa la cabecera de un pedido de venta o de compra.
// CounterpartyName es un snapshot denormalizado: si el cliente/proveedor
// cambia de nombre después, el pedido histórico no se reescribe.
// Seq es un consecutivo de inserción usado como desempate estable al
// reconstruir el ledger de movimientos con pedidos del mismo día.
type Order struct {
	ID               string
	CompanyID        string
	Kind             string // sales | purchase
	Number           string // PV-00001 / PC-00001
	CounterpartyID   string // customer_id o supplier_id según Kind
	CounterpartyName string
	Date             time.Time
	Status           string // Pendente | Faturado | Recebido | Cancelado
	TotalValue       decimal.Decimal
	Items            []OrderItem
	Seq              int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// OrderItem es una línea de pedido. ProductName y UnitPrice son snapshots
// inmutables tomados al crear el pedido: los cambios posteriores de precio o
// nombre del producto no alteran pedidos históricos.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// LineTotal devuelve quantity * unit_price de la línea.
func (it OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
