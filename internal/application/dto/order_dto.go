package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea de pedido en la creación. El nombre y el precio
// del producto se toman del catálogo al crear (snapshot inmutable).
type OrderItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid4"`
	Quantity  int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"` // 0 = usar el precio del catálogo
}

// CreateOrderRequest entrada para crear un pedido de venta o compra.
// CounterpartyID es customer_id en ventas y supplier_id en compras.
// FulfillNow crea el pedido directamente en estado cumplido (las compras lo
// hacen por defecto: Recebido al crear).
type CreateOrderRequest struct {
	CounterpartyID string             `json:"counterparty_id" validate:"required,uuid4"`
	Date           string             `json:"date" validate:"omitempty,datetime=2006-01-02"` // vacío = hoy
	Items          []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	FulfillNow     *bool              `json:"fulfill_now"` // nil = default según tipo
}

// SetStatusRequest entrada de PATCH /:id/status.
type SetStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderItemResponse una línea en respuestas.
type OrderItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID               string              `json:"id"`
	CompanyID        string              `json:"company_id"`
	Kind             string              `json:"kind"`
	Number           string              `json:"number"`
	CounterpartyID   string              `json:"counterparty_id"`
	CounterpartyName string              `json:"counterparty_name"`
	Date             time.Time           `json:"date"`
	Status           string              `json:"status"`
	TotalValue       decimal.Decimal     `json:"total_value"`
	Items            []OrderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// OrderListResponse lista paginada de pedidos.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
