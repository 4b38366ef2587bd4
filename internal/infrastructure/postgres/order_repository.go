package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// orderTables parametriza el adaptador: el esquema de ventas y compras es
// idéntico salvo nombres de tablas y de la columna de contraparte.
type orderTables struct {
	kind             string
	orders           string // sales_orders | purchase_orders
	items            string // sales_order_items | purchase_order_items
	counterpartyCol  string // customer_id | supplier_id
	counterpartyName string // customer_name | supplier_name
}

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL
// (usable con pool o tx). Una instancia por tipo de pedido.
type OrderRepo struct {
	q Querier
	t orderTables
}

// NewSalesOrderRepository adaptador sobre sales_orders.
func NewSalesOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q, t: orderTables{
		kind:             entity.OrderKindSales,
		orders:           "sales_orders",
		items:            "sales_order_items",
		counterpartyCol:  "customer_id",
		counterpartyName: "customer_name",
	}}
}

// NewPurchaseOrderRepository adaptador sobre purchase_orders.
func NewPurchaseOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q, t: orderTables{
		kind:             entity.OrderKindPurchase,
		orders:           "purchase_orders",
		items:            "purchase_order_items",
		counterpartyCol:  "supplier_id",
		counterpartyName: "supplier_name",
	}}
}

// Create inserta cabecera y líneas. El seq lo asigna la base de datos
// (BIGSERIAL): consecutivo de inserción usado como desempate del historial de
// movimientos.
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	header := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, number, %s, %s, date, status, total_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`,
		r.t.orders, r.t.counterpartyCol, r.t.counterpartyName)
	err := r.q.QueryRow(ctx, header,
		order.ID, order.CompanyID, order.Number, order.CounterpartyID, order.CounterpartyName,
		order.Date, order.Status, order.TotalValue, order.CreatedAt, order.UpdatedAt,
	).Scan(&order.Seq)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := fmt.Sprintf(`
		INSERT INTO %s (id, order_id, product_id, product_name, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`, r.t.items)
	for _, it := range order.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			it.ID, order.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
		); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el pedido con sus líneas; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, number, %s, %s, date, status, total_value, seq, created_at, updated_at
		FROM %s WHERE id = $1`, r.t.counterpartyCol, r.t.counterpartyName, r.t.orders)
	o, err := r.scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems([]*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// ListByCompany lista pedidos con líneas, filtrados opcionalmente por estado,
// ordenados por fecha descendente (y seq como desempate).
func (r *OrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, number, %s, %s, date, status, total_value, seq, created_at, updated_at
		FROM %s WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY date DESC, seq DESC LIMIT $3 OFFSET $4`,
		r.t.counterpartyCol, r.t.counterpartyName, r.t.orders)
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	list, err := r.collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListAllByCompany devuelve el conjunto completo de pedidos con líneas
// (snapshot para reportes y reconstrucción del historial de stock).
func (r *OrderRepo) ListAllByCompany(companyID string) ([]*entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, number, %s, %s, date, status, total_value, seq, created_at, updated_at
		FROM %s WHERE company_id = $1 ORDER BY date, seq`,
		r.t.counterpartyCol, r.t.counterpartyName, r.t.orders)
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	defer rows.Close()

	list, err := r.collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET status = $2, updated_at = $3 WHERE id = $1`, r.t.orders)
	cmd, err := r.q.Exec(context.Background(), query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextNumber devuelve el siguiente consecutivo del número legible por empresa
// y tipo. El upsert es atómico dentro de la transacción de Create.
func (r *OrderRepo) NextNumber(companyID string) (int64, error) {
	query := `
		INSERT INTO order_numbers (company_id, kind, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, kind)
		DO UPDATE SET last_number = order_numbers.last_number + 1
		RETURNING last_number`
	var n int64
	if err := r.q.QueryRow(context.Background(), query, companyID, r.t.kind).Scan(&n); err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return n, nil
}

func (r *OrderRepo) scanOrder(row pgx.Row) (*entity.Order, error) {
	o := entity.Order{Kind: r.t.kind}
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.Number, &o.CounterpartyID, &o.CounterpartyName,
		&o.Date, &o.Status, &o.TotalValue, &o.Seq, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	var out []*entity.Order
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}

// loadItems trae las líneas de todos los pedidos en una sola consulta.
func (r *OrderRepo) loadItems(list []*entity.Order) error {
	if len(list) == 0 {
		return nil
	}
	ids := make([]string, 0, len(list))
	byID := make(map[string]*entity.Order, len(list))
	for _, o := range list {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	query := fmt.Sprintf(`
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM %s WHERE order_id = ANY($1) ORDER BY id`, r.t.items)
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate order items: %w", err)
	}
	return nil
}
