package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la empresa.
// Stock es un entero (unidades) y nunca queda negativo: toda mutación pasa por
// el ciclo de vida de pedidos con un UPDATE condicional en la base de datos.
// MinStock/MaxStock alimentan el cálculo centralizado de alertas.
type Product struct {
	ID          string
	CompanyID   string
	Code        string // código único por empresa
	Description string
	Category    string
	Brand       string
	Price       decimal.Decimal // precio de venta de referencia
	Stock       int64
	MinStock    int64
	MaxStock    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
