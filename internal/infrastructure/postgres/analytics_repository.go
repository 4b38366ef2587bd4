package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los insights del asistente y
// la ejecución controlada del SQL generado por el LLM.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// RunReadOnlyQuery ejecuta un SELECT ya validado por el use case dentro de
// una transacción READ ONLY (segunda línea de defensa tras la guarda léxica)
// y devuelve como máximo maxRows filas como mapas columna→valor.
func (r *AnalyticsRepo) RunReadOnlyQuery(ctx context.Context, query string, maxRows int) ([]map[string]any, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("analytics.RunReadOnlyQuery: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.RunReadOnlyQuery: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var results []map[string]any
	for rows.Next() {
		if len(results) >= maxRows {
			break
		}
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("analytics.RunReadOnlyQuery: values: %w", err)
		}
		row := make(map[string]any, len(fields))
		for i, f := range fields {
			row[string(f.Name)] = values[i]
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.RunReadOnlyQuery: iterate: %w", err)
	}
	return results, nil
}

// DemandSpikes productos cuyas ventas de los últimos 30 días al menos
// duplican las de los 30 días anteriores, con un mínimo de 10 unidades
// recientes para filtrar ruido de bajo volumen.
func (r *AnalyticsRepo) DemandSpikes(ctx context.Context, companyID string, now time.Time) ([]repository.DemandSpikeResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.code,
	    p.description,
	    COALESCE(SUM(i.quantity) FILTER (WHERE o.date >  $2), 0) AS recent_qty,
	    COALESCE(SUM(i.quantity) FILTER (WHERE o.date <= $2), 0) AS previous_qty
	FROM products p
	JOIN sales_order_items i ON i.product_id = p.id
	JOIN sales_orders      o ON o.id         = i.order_id
	WHERE p.company_id = $1
	  AND o.status = 'Faturado'
	  AND o.date > $3
	GROUP BY p.id, p.code, p.description
	HAVING COALESCE(SUM(i.quantity) FILTER (WHERE o.date > $2), 0) >= 10
	   AND COALESCE(SUM(i.quantity) FILTER (WHERE o.date > $2), 0)
	       >= 2 * COALESCE(SUM(i.quantity) FILTER (WHERE o.date <= $2), 0)
	ORDER BY recent_qty DESC`

	cutRecent := now.AddDate(0, 0, -30)
	cutWindow := now.AddDate(0, 0, -60)

	rows, err := r.pool.Query(ctx, query, companyID, cutRecent, cutWindow)
	if err != nil {
		return nil, fmt.Errorf("analytics.DemandSpikes: %w", err)
	}
	defer rows.Close()

	var results []repository.DemandSpikeResult
	for rows.Next() {
		var row repository.DemandSpikeResult
		if err := rows.Scan(&row.ProductID, &row.Code, &row.Description, &row.RecentQty, &row.PreviousQty); err != nil {
			return nil, fmt.Errorf("analytics.DemandSpikes: scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.DemandSpikes: iterate: %w", err)
	}
	return results, nil
}

// CoPurchasePairs pares de productos que aparecen juntos en al menos
// minOccurrences pedidos de venta cumplidos. El self-join con a.product_id <
// b.product_id evita duplicar el par en ambos sentidos.
func (r *AnalyticsRepo) CoPurchasePairs(ctx context.Context, companyID string, minOccurrences int) ([]repository.CoPurchaseResult, error) {
	const query = `
	SELECT
	    a.product_id,
	    a.product_name,
	    b.product_id,
	    b.product_name,
	    COUNT(*) AS occurrences
	FROM sales_order_items a
	JOIN sales_order_items b ON b.order_id = a.order_id AND a.product_id < b.product_id
	JOIN sales_orders      o ON o.id       = a.order_id
	WHERE o.company_id = $1
	  AND o.status = 'Faturado'
	GROUP BY a.product_id, a.product_name, b.product_id, b.product_name
	HAVING COUNT(*) >= $2
	ORDER BY occurrences DESC
	LIMIT 10`

	rows, err := r.pool.Query(ctx, query, companyID, minOccurrences)
	if err != nil {
		return nil, fmt.Errorf("analytics.CoPurchasePairs: %w", err)
	}
	defer rows.Close()

	var results []repository.CoPurchaseResult
	for rows.Next() {
		var row repository.CoPurchaseResult
		if err := rows.Scan(&row.ProductAID, &row.ProductAName, &row.ProductBID, &row.ProductBName, &row.Occurrences); err != nil {
			return nil, fmt.Errorf("analytics.CoPurchasePairs: scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.CoPurchasePairs: iterate: %w", err)
	}
	return results, nil
}

// InactiveSuppliers proveedores sin compras Recebido desde `since`. Incluye
// proveedores a los que nunca se les ha comprado (last_order_date NULL).
func (r *AnalyticsRepo) InactiveSuppliers(ctx context.Context, companyID string, since time.Time) ([]repository.InactiveSupplierResult, error) {
	const query = `
	SELECT
	    s.id,
	    s.name,
	    MAX(o.date) FILTER (WHERE o.status = 'Recebido') AS last_order_date
	FROM suppliers s
	LEFT JOIN purchase_orders o ON o.supplier_id = s.id
	WHERE s.company_id = $1
	GROUP BY s.id, s.name
	HAVING MAX(o.date) FILTER (WHERE o.status = 'Recebido') IS NULL
	    OR MAX(o.date) FILTER (WHERE o.status = 'Recebido') < $2
	ORDER BY s.name`

	rows, err := r.pool.Query(ctx, query, companyID, since)
	if err != nil {
		return nil, fmt.Errorf("analytics.InactiveSuppliers: %w", err)
	}
	defer rows.Close()

	var results []repository.InactiveSupplierResult
	for rows.Next() {
		var row repository.InactiveSupplierResult
		if err := rows.Scan(&row.SupplierID, &row.SupplierName, &row.LastOrderDate); err != nil {
			return nil, fmt.Errorf("analytics.InactiveSuppliers: scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("analytics.InactiveSuppliers: iterate: %w", err)
	}
	return results, nil
}
