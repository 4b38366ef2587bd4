package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/orders"
)

// OrderHandler sirve pedidos de venta o de compra según el caso de uso
// que reciba. Se instancia dos veces en el router; las anotaciones de
// swagger documentan ambas rutas.
type OrderHandler struct {
	uc    *orders.UseCase
	label string // "pedido de venta" / "pedido de compra", para mensajes
}

// NewSalesOrderHandler construye el handler de pedidos de venta.
func NewSalesOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, label: "pedido de venta"}
}

// NewPurchaseOrderHandler construye el handler de pedidos de compra.
func NewPurchaseOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, label: "pedido de compra"}
}

// Create godoc
// @Summary      Crear pedido (venta o compra)
// @Description  Las compras se crean cumplidas (Recebido) por defecto y suman stock; las ventas nacen Pendente salvo fulfill_now.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Datos del pedido"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/sales-orders [post]
// @Router       /api/purchase-orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido por ID
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-orders/{id} [get]
// @Router       /api/purchase-orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: h.label + " no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos, con filtro opcional por estado
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Pendente, Faturado/Recebido o Cancelado"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.OrderListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/sales-orders [get]
// @Router       /api/purchase-orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetCompanyID(c), c.Query("status"), page)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar el estado de un pedido
// @Description  Cumplir descuenta (ventas) o suma (compras) stock; cancelar un pedido cumplido revierte el movimiento exacto. Repetir el mismo estado es un no-op.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del pedido"
// @Param        body  body  dto.SetStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "Transición inválida o stock insuficiente"
// @Router       /api/sales-orders/{id}/status [patch]
// @Router       /api/purchase-orders/{id}/status [patch]
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.SetStatus(c.Context(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
