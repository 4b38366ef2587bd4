package repository

import (
	"context"
	"time"
)

// DemandSpikeResult producto cuya demanda reciente duplica (o más) la del
// período anterior comparable.
type DemandSpikeResult struct {
	ProductID   string
	Code        string
	Description string
	RecentQty   int64 // unidades vendidas en los últimos 30 días
	PreviousQty int64 // unidades vendidas en los 30 días anteriores
}

// CoPurchaseResult par de productos que aparecen juntos en pedidos de venta
// cumplidos.
type CoPurchaseResult struct {
	ProductAID   string
	ProductAName string
	ProductBID   string
	ProductBName string
	Occurrences  int
}

// InactiveSupplierResult proveedor sin compras recibidas desde LastOrderDate.
type InactiveSupplierResult struct {
	SupplierID    string
	SupplierName  string
	LastOrderDate *time.Time // nil si nunca se le compró
}

// AnalyticsRepository consultas de lectura para los insights del asistente y
// la ejecución controlada de SQL generado por el LLM. Las implementaciones
// son read-only (no modifican datos).
type AnalyticsRepository interface {
	// RunReadOnlyQuery ejecuta un SELECT ya validado por el use case y
	// devuelve como máximo maxRows filas como mapas columna→valor.
	RunReadOnlyQuery(ctx context.Context, query string, maxRows int) ([]map[string]any, error)

	// DemandSpikes productos con ventas últimas 30 días >= 2x los 30 previos
	// (con un mínimo de unidades para evitar ruido).
	DemandSpikes(ctx context.Context, companyID string, now time.Time) ([]DemandSpikeResult, error)

	// CoPurchasePairs pares de productos comprados juntos en al menos
	// minOccurrences pedidos cumplidos.
	CoPurchasePairs(ctx context.Context, companyID string, minOccurrences int) ([]CoPurchaseResult, error)

	// InactiveSuppliers proveedores sin pedidos Recebido desde `since`.
	InactiveSuppliers(ctx context.Context, companyID string, since time.Time) ([]InactiveSupplierResult, error)
}
