// Package analytics construye el resumen del dashboard: KPIs del día y del
// mes, top de productos y alertas de inventario, todo derivado del snapshot
// de la empresa.
package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/domain/alert"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/report"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

const dashboardTopN = 5

// Meses en español para la etiqueta del dashboard.
var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// DashboardUseCase arma el resumen ejecutivo de la empresa.
type DashboardUseCase struct {
	products  repository.ProductRepository
	sales     repository.OrderRepository
	purchases repository.OrderRepository

	// now es inyectable para tests deterministas.
	now func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(products repository.ProductRepository, sales, purchases repository.OrderRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, sales: sales, purchases: purchases, now: time.Now}
}

// Summary calcula los KPIs del día y del mes en curso más las alertas.
func (uc *DashboardUseCase) Summary(companyID string) (*dto.DashboardSummaryDTO, error) {
	type prodResult struct {
		rows []*entity.Product
		err  error
	}
	type orderResult struct {
		rows []*entity.Order
		err  error
	}

	prodChan := make(chan prodResult, 1)
	salesChan := make(chan orderResult, 1)
	purchChan := make(chan orderResult, 1)

	go func() {
		rows, err := uc.products.ListAllByCompany(companyID)
		prodChan <- prodResult{rows, err}
	}()
	go func() {
		rows, err := uc.sales.ListAllByCompany(companyID)
		salesChan <- orderResult{rows, err}
	}()
	go func() {
		rows, err := uc.purchases.ListAllByCompany(companyID)
		purchChan <- orderResult{rows, err}
	}()

	pRes := <-prodChan
	sRes := <-salesChan
	cRes := <-purchChan

	if pRes.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", pRes.err)
	}
	if sRes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sRes.err)
	}
	if cRes.err != nil {
		return nil, fmt.Errorf("dashboard: compras: %w", cRes.err)
	}

	now := uc.now()
	today := report.Period{
		From: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		To:   time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location()),
	}
	month := report.Period{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		To:   today.To,
	}

	todayRevenue, todayProfit := revenueAndProfit(pRes.rows, sRes.rows, cRes.rows, today)
	monthRevenue, monthProfit := revenueAndProfit(pRes.rows, sRes.rows, cRes.rows, month)

	topProducts := make([]dto.TopEntityDTO, 0, dashboardTopN)
	for _, e := range report.TopProducts(sRes.rows, month, dashboardTopN) {
		topProducts = append(topProducts, dto.TopEntityDTO{ID: e.ID, Name: e.Name, Count: e.Count, Total: e.Total})
	}

	alerts := toAlertDTOs(alert.Evaluate(pRes.rows))
	lowCount := 0
	for _, a := range alerts {
		if a.Kind == alert.KindLowStock {
			lowCount++
		}
	}

	return &dto.DashboardSummaryDTO{
		TodayRevenue:  todayRevenue,
		TodayProfit:   todayProfit,
		MonthRevenue:  monthRevenue,
		MonthProfit:   monthProfit,
		TopProducts:   topProducts,
		LowStockCount: lowCount,
		Alerts:        alerts,
		DateLabel:     fmt.Sprintf("%s %d", spanishMonths[now.Month()-1], now.Year()),
	}, nil
}

// revenueAndProfit suma ingreso y utilidad de las ventas cumplidas del período
// (utilidad a costo promedio histórico).
func revenueAndProfit(products []*entity.Product, sales, purchases []*entity.Order, p report.Period) (decimal.Decimal, decimal.Decimal) {
	revenue := report.TotalRevenue(sales, p).Round(2)
	profit := decimal.Zero
	for _, pr := range report.Profitability(products, sales, purchases, p) {
		profit = profit.Add(pr.Profit)
	}
	return revenue, profit.Round(2)
}

func toAlertDTOs(alerts []alert.Alert) []dto.AlertDTO {
	out := make([]dto.AlertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertDTO{
			Kind:        a.Kind,
			Severity:    a.Severity,
			ProductID:   a.ProductID,
			Code:        a.Code,
			Description: a.Description,
			Stock:       a.Stock,
			MinStock:    a.MinStock,
			MaxStock:    a.MaxStock,
		})
	}
	return out
}

// Alerts devuelve las alertas vigentes del catálogo.
func (uc *DashboardUseCase) Alerts(companyID string) (*dto.AlertsResponse, error) {
	products, err := uc.products.ListAllByCompany(companyID)
	if err != nil {
		return nil, err
	}
	alerts := toAlertDTOs(alert.Evaluate(products))
	return &dto.AlertsResponse{Alerts: alerts, Total: len(alerts)}, nil
}
