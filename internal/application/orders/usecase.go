package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

// UseCase gestiona el ciclo de vida de pedidos de un tipo (venta o compra).
// Se instancia dos veces con el mismo código: NewSales y NewPurchase solo
// cambian el tipo y cómo se resuelve la contraparte.
type UseCase struct {
	kind     string
	tx       TxRunner
	orders   repository.OrderRepository
	products repository.ProductRepository

	// resolveCounterparty devuelve (companyID, nombre) del cliente o
	// proveedor; (nil, nil) del repositorio se traduce a ErrNotFound.
	resolveCounterparty func(id string) (string, string, error)
}

// NewSales construye el caso de uso de pedidos de venta.
func NewSales(tx TxRunner, orders repository.OrderRepository, products repository.ProductRepository, customers repository.CustomerRepository) *UseCase {
	return &UseCase{
		kind:     entity.OrderKindSales,
		tx:       tx,
		orders:   orders,
		products: products,
		resolveCounterparty: func(id string) (string, string, error) {
			c, err := customers.GetByID(id)
			if err != nil {
				return "", "", err
			}
			if c == nil {
				return "", "", domain.ErrNotFound
			}
			return c.CompanyID, c.Name, nil
		},
	}
}

// NewPurchase construye el caso de uso de pedidos de compra.
func NewPurchase(tx TxRunner, orders repository.OrderRepository, products repository.ProductRepository, suppliers repository.SupplierRepository) *UseCase {
	return &UseCase{
		kind:     entity.OrderKindPurchase,
		tx:       tx,
		orders:   orders,
		products: products,
		resolveCounterparty: func(id string) (string, string, error) {
			s, err := suppliers.GetByID(id)
			if err != nil {
				return "", "", err
			}
			if s == nil {
				return "", "", domain.ErrNotFound
			}
			return s.CompanyID, s.Name, nil
		},
	}
}

// txOrders devuelve el repositorio de pedidos del tipo correcto dentro de la
// transacción.
func (uc *UseCase) txOrders(r TxRepos) repository.OrderRepository {
	if uc.kind == entity.OrderKindPurchase {
		return r.PurchaseOrders
	}
	return r.SalesOrders
}

// numberFor formatea el consecutivo legible: PV-00001 / PC-00001.
func numberFor(kind string, n int64) string {
	prefix := "PV"
	if kind == entity.OrderKindPurchase {
		prefix = "PC"
	}
	return fmt.Sprintf("%s-%05d", prefix, n)
}

// Create crea un pedido con snapshot de nombre y precio por línea.
// Las compras se crean cumplidas (Recebido) salvo que FulfillNow sea false;
// las ventas se crean Pendente salvo que FulfillNow sea true. Toda venta
// valida stock disponible por línea sin importar el estado inicial, y una
// línea repetida del mismo producto se rechaza con ErrDuplicate. Si el
// pedido nace cumplido, el ajuste de stock ocurre en la misma transacción
// que el insert: sin stock suficiente no se crea nada.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	cpCompany, cpName, err := uc.resolveCounterparty(in.CounterpartyID)
	if err != nil {
		return nil, err
	}
	if cpCompany != companyID {
		return nil, domain.ErrNotFound
	}

	date := time.Now()
	if in.Date != "" {
		date, err = time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	fulfillNow := uc.kind == entity.OrderKindPurchase
	if in.FulfillNow != nil {
		fulfillNow = *in.FulfillNow
	}

	now := time.Now()
	ord := &entity.Order{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Kind:             uc.kind,
		CounterpartyID:   in.CounterpartyID,
		CounterpartyName: cpName,
		Date:             date,
		Status:           order.StatusPending,
		TotalValue:       decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if fulfillNow {
		ord.Status = order.FulfilledStatus(uc.kind)
	}

	seen := make(map[string]struct{}, len(in.Items))
	for _, it := range in.Items {
		if _, dup := seen[it.ProductID]; dup {
			return nil, domain.ErrDuplicate
		}
		seen[it.ProductID] = struct{}{}
		p, err := uc.products.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		// Toda venta valida stock al crearse, incluso Pendente; el UPDATE
		// condicional de AdjustStock cubre las escrituras concurrentes.
		if uc.kind == entity.OrderKindSales && it.Quantity > p.Stock {
			return nil, domain.ErrInsufficientStock
		}
		price := it.UnitPrice
		if price.IsZero() {
			price = p.Price
		}
		line := entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     ord.ID,
			ProductID:   p.ID,
			ProductName: p.Description,
			Quantity:    it.Quantity,
			UnitPrice:   price,
		}
		ord.Items = append(ord.Items, line)
		ord.TotalValue = ord.TotalValue.Add(line.LineTotal())
	}

	err = uc.tx.Run(ctx, func(r TxRepos) error {
		repo := uc.txOrders(r)
		n, err := repo.NextNumber(companyID)
		if err != nil {
			return err
		}
		ord.Number = numberFor(uc.kind, n)
		if err := repo.Create(ord); err != nil {
			return err
		}
		if !fulfillNow {
			return nil
		}
		for _, it := range ord.Items {
			delta := order.StockDelta(uc.kind, order.StatusPending, ord.Status, it.Quantity)
			if delta == 0 {
				continue
			}
			if err := r.Products.AdjustStock(it.ProductID, delta); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// SetStatus aplica una transición de estado y su efecto sobre el stock en una
// sola transacción: entrar a cumplido ajusta el stock de cada línea, salir de
// cumplido (cancelación) lo revierte exactamente. Reaplicar el mismo estado
// es un no-op sin efectos.
func (uc *UseCase) SetStatus(ctx context.Context, companyID, id, status string) (*dto.OrderResponse, error) {
	var ord *entity.Order
	err := uc.tx.Run(ctx, func(r TxRepos) error {
		repo := uc.txOrders(r)
		o, err := repo.GetByID(id)
		if err != nil {
			return err
		}
		if o == nil || o.CompanyID != companyID {
			return domain.ErrNotFound
		}
		applied, err := order.Transition(uc.kind, o.Status, status)
		if err != nil {
			return err
		}
		ord = o
		if !applied {
			return nil
		}
		for _, it := range o.Items {
			delta := order.StockDelta(uc.kind, o.Status, status, it.Quantity)
			if delta == 0 {
				continue
			}
			if err := r.Products.AdjustStock(it.ProductID, delta); err != nil {
				return err
			}
		}
		now := time.Now()
		if err := repo.UpdateStatus(o.ID, status, now); err != nil {
			return err
		}
		o.Status = status
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(ord), nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *UseCase) GetByID(companyID, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.CompanyID != companyID {
		return nil, nil
	}
	return toOrderResponse(o), nil
}

// List lista pedidos de la empresa, opcionalmente filtrados por estado.
func (uc *UseCase) List(companyID, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if status != "" && !order.ValidStatus(uc.kind, status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.orders.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, o := range list {
		out.Items = append(out.Items, *toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal(),
		})
	}
	return &dto.OrderResponse{
		ID:               o.ID,
		CompanyID:        o.CompanyID,
		Kind:             o.Kind,
		Number:           o.Number,
		CounterpartyID:   o.CounterpartyID,
		CounterpartyName: o.CounterpartyName,
		Date:             o.Date,
		Status:           o.Status,
		TotalValue:       o.TotalValue,
		Items:            items,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}
