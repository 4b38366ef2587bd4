package dto

import "github.com/shopspring/decimal"

// ReportRequest parámetros comunes de los reportes.
// Fechas en YYYY-MM-DD; vacías = sin filtro (histórico completo).
type ReportRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
	TopN      int    `query:"top_n"` // default 5
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ProductProfitDTO rentabilidad de un producto en el período.
type ProductProfitDTO struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Description  string          `json:"description"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	AverageCost  decimal.Decimal `json:"average_cost"`
	Profit       decimal.Decimal `json:"profit"`
	MarginPct    decimal.Decimal `json:"margin_pct"`
}

// SalesReportDTO respuesta de GET /api/reports/sales.
type SalesReportDTO struct {
	Period       PeriodDTO          `json:"period"`
	TotalRevenue decimal.Decimal    `json:"total_revenue"`
	TotalProfit  decimal.Decimal    `json:"total_profit"`
	OrderCount   int                `json:"order_count"`
	Products     []ProductProfitDTO `json:"products"`
}

// StockReportItemDTO un producto en el reporte de inventario valorizado.
type StockReportItemDTO struct {
	ProductID   string          `json:"product_id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Stock       int64           `json:"stock"`
	AverageCost decimal.Decimal `json:"average_cost"`
	StockValue  decimal.Decimal `json:"stock_value"` // stock × costo promedio
}

// StockReportDTO respuesta de GET /api/reports/stock.
type StockReportDTO struct {
	TotalValue decimal.Decimal      `json:"total_value"`
	Items      []StockReportItemDTO `json:"items"`
}

// ParetoEntryDTO una posición de la curva Pareto/ABC.
type ParetoEntryDTO struct {
	Rank          int             `json:"rank"`
	ProductID     string          `json:"product_id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	Revenue       decimal.Decimal `json:"revenue"`
	RevenuePct    decimal.Decimal `json:"revenue_pct"`
	CumulativePct decimal.Decimal `json:"cumulative_pct"`
}

// ParetoReportDTO respuesta de GET /api/reports/pareto.
type ParetoReportDTO struct {
	Period  PeriodDTO        `json:"period"`
	Entries []ParetoEntryDTO `json:"entries"`
}

// TopEntityDTO una entidad (cliente/proveedor/producto) en un ranking Top-N.
type TopEntityDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// TopReportDTO respuesta de GET /api/reports/top.
type TopReportDTO struct {
	Period       PeriodDTO      `json:"period"`
	TopCustomers []TopEntityDTO `json:"top_customers"`
	TopSuppliers []TopEntityDTO `json:"top_suppliers"`
	TopProducts  []TopEntityDTO `json:"top_products"`
}

// IdleStockDTO respuesta de GET /api/reports/idle-stock.
type IdleStockDTO struct {
	Period PeriodDTO            `json:"period"`
	Items  []StockReportItemDTO `json:"items"`
}
