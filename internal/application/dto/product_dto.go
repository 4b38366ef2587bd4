package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial puede
// venir mayor a cero (carga inicial); después solo muta vía pedidos.
type CreateProductRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=100"`
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	Brand       string          `json:"brand" validate:"max=100"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock" validate:"min=0"`
	MinStock    int64           `json:"min_stock" validate:"min=0"`
	MaxStock    int64           `json:"max_stock" validate:"min=0"`
}

// UpdateProductRequest entrada para actualizar un producto.
// Stock no es editable por esta vía: se maneja con el ciclo de vida de pedidos.
type UpdateProductRequest struct {
	Description *string          `json:"description" validate:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Brand       *string          `json:"brand" validate:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *int64           `json:"min_stock" validate:"omitempty,min=0"`
	MaxStock    *int64           `json:"max_stock" validate:"omitempty,min=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	MinStock    int64           `json:"min_stock"`
	MaxStock    int64           `json:"max_stock"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LedgerMovementDTO un movimiento del historial reconstruido de un producto.
type LedgerMovementDTO struct {
	Date      time.Time `json:"date"`
	Direction string    `json:"direction"` // in | out
	Document  string    `json:"document"`
	Quantity  int64     `json:"quantity"`
	Balance   int64     `json:"balance"`
}

// LedgerResponse historial completo de movimientos de un producto.
type LedgerResponse struct {
	ProductID      string              `json:"product_id"`
	Code           string              `json:"code"`
	InitialBalance int64               `json:"initial_balance"`
	FinalBalance   int64               `json:"final_balance"`
	CurrentStock   int64               `json:"current_stock"`
	Movements      []LedgerMovementDTO `json:"movements"`
}
