package dto

import "github.com/shopspring/decimal"

// AlertDTO una alerta de inventario derivada.
type AlertDTO struct {
	Kind        string `json:"kind"`     // low_stock | overstock
	Severity    string `json:"severity"` // critical | low (solo low_stock)
	ProductID   string `json:"product_id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Stock       int64  `json:"stock"`
	MinStock    int64  `json:"min_stock"`
	MaxStock    int64  `json:"max_stock,omitempty"`
}

// AlertsResponse respuesta de GET /api/alerts.
type AlertsResponse struct {
	Alerts []AlertDTO `json:"alerts"`
	Total  int        `json:"total"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, top productos del mes y contador de alertas.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodayRevenue decimal.Decimal `json:"today_revenue"`
	TodayProfit  decimal.Decimal `json:"today_profit"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthRevenue decimal.Decimal `json:"month_revenue"`
	MonthProfit  decimal.Decimal `json:"month_profit"`

	// Top 5 productos por ingreso del mes
	TopProducts []TopEntityDTO `json:"top_products"`

	// Alertas derivadas del catálogo actual
	LowStockCount int        `json:"low_stock_count"`
	Alerts        []AlertDTO `json:"alerts"`

	DateLabel string `json:"date_label"` // ej: "Agosto 2026"
}
