// Package reports orquesta el motor de agregados: trae el snapshot de
// productos y pedidos de la empresa y delega el cálculo a las funciones puras
// de internal/domain/report e internal/domain/ledger.
package reports

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/ledger"
	"github.com/gestorpyme/gestor-api/internal/domain/report"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

const (
	defaultTopN = 5
	maxTopN     = 50
)

// PDFGenerator renderiza el reporte de ventas como PDF descargable.
type PDFGenerator interface {
	SalesReport(companyName string, rep *dto.SalesReportDTO) ([]byte, error)
}

// UseCase casos de uso de reportes.
type UseCase struct {
	products  repository.ProductRepository
	sales     repository.OrderRepository
	purchases repository.OrderRepository
	companies repository.CompanyRepository
	pdf       PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(products repository.ProductRepository, sales, purchases repository.OrderRepository, companies repository.CompanyRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{products: products, sales: sales, purchases: purchases, companies: companies, pdf: pdf}
}

// snapshot es el conjunto completo de datos de la empresa sobre el que operan
// las funciones puras de agregación.
type snapshot struct {
	products  []*entity.Product
	sales     []*entity.Order
	purchases []*entity.Order
}

// loadSnapshot trae catálogo, ventas y compras en paralelo (consultas
// independientes).
func (uc *UseCase) loadSnapshot(companyID string) (*snapshot, error) {
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
		return nil, fmt.Errorf("reports: productos: %w", pRes.err)
	}
	if sRes.err != nil {
		return nil, fmt.Errorf("reports: ventas: %w", sRes.err)
	}
	if cRes.err != nil {
		return nil, fmt.Errorf("reports: compras: %w", cRes.err)
	}
	return &snapshot{products: pRes.rows, sales: sRes.rows, purchases: cRes.rows}, nil
}

// Sales genera el reporte de ventas y rentabilidad del período.
func (uc *UseCase) Sales(companyID string, req dto.ReportRequest) (*dto.SalesReportDTO, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	return uc.buildSalesReport(snap, period), nil
}

func (uc *UseCase) buildSalesReport(snap *snapshot, period report.Period) *dto.SalesReportDTO {
	profits := report.Profitability(snap.products, snap.sales, snap.purchases, period)

	totalProfit := decimal.Zero
	products := make([]dto.ProductProfitDTO, 0, len(profits))
	for _, pr := range profits {
		totalProfit = totalProfit.Add(pr.Profit)
		products = append(products, dto.ProductProfitDTO{
			ProductID:    pr.ProductID,
			Code:         pr.Code,
			Description:  pr.Description,
			QuantitySold: pr.QuantitySold,
			Revenue:      pr.Revenue,
			AverageCost:  pr.AverageCost,
			Profit:       pr.Profit,
			MarginPct:    pr.MarginPct,
		})
	}

	return &dto.SalesReportDTO{
		Period:       periodDTO(period),
		TotalRevenue: report.TotalRevenue(snap.sales, period).Round(2),
		TotalProfit:  totalProfit.Round(2),
		OrderCount:   len(report.FilterFulfilled(snap.sales, period)),
		Products:     products,
	}
}

// SalesPDF genera el reporte de ventas del período como PDF.
func (uc *UseCase) SalesPDF(companyID string, req dto.ReportRequest) ([]byte, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if company, err := uc.companies.GetByID(companyID); err == nil && company != nil {
		companyName = company.Name
	}
	return uc.pdf.SalesReport(companyName, uc.buildSalesReport(snap, period))
}

// Stock genera el reporte de inventario valorizado a costo promedio.
func (uc *UseCase) Stock(companyID string) (*dto.StockReportDTO, error) {
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	costs := report.AverageCosts(snap.purchases)

	out := &dto.StockReportDTO{TotalValue: decimal.Zero}
	for _, p := range snap.products {
		value := costs[p.ID].Mul(decimal.NewFromInt(p.Stock)).Round(2)
		out.TotalValue = out.TotalValue.Add(value)
		out.Items = append(out.Items, dto.StockReportItemDTO{
			ProductID:   p.ID,
			Code:        p.Code,
			Description: p.Description,
			Stock:       p.Stock,
			AverageCost: costs[p.ID].Round(2),
			StockValue:  value,
		})
	}
	return out, nil
}

// Pareto genera la curva Pareto/ABC de ingresos por producto.
func (uc *UseCase) Pareto(companyID string, req dto.ReportRequest) (*dto.ParetoReportDTO, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	entries := report.Pareto(snap.products, snap.sales, period)

	out := &dto.ParetoReportDTO{Period: periodDTO(period)}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.ParetoEntryDTO{
			Rank:          e.Rank,
			ProductID:     e.ProductID,
			Code:          e.Code,
			Description:   e.Description,
			Revenue:       e.Revenue,
			RevenuePct:    e.RevenuePct,
			CumulativePct: e.CumulativePct,
		})
	}
	return out, nil
}

// Top genera los rankings Top-N de clientes, proveedores y productos.
func (uc *UseCase) Top(companyID string, req dto.ReportRequest) (*dto.TopReportDTO, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	n := req.TopN
	if n <= 0 {
		n = defaultTopN
	}
	if n > maxTopN {
		n = maxTopN
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	return &dto.TopReportDTO{
		Period:       periodDTO(period),
		TopCustomers: toTopDTOs(report.TopCounterparties(snap.sales, period, n)),
		TopSuppliers: toTopDTOs(report.TopCounterparties(snap.purchases, period, n)),
		TopProducts:  toTopDTOs(report.TopProducts(snap.sales, period, n)),
	}, nil
}

// IdleStock lista los productos con existencias y cero ventas en el período.
func (uc *UseCase) IdleStock(companyID string, req dto.ReportRequest) (*dto.IdleStockDTO, error) {
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	costs := report.AverageCosts(snap.purchases)

	out := &dto.IdleStockDTO{Period: periodDTO(period)}
	for _, p := range report.IdleStock(snap.products, snap.sales, period) {
		out.Items = append(out.Items, dto.StockReportItemDTO{
			ProductID:   p.ID,
			Code:        p.Code,
			Description: p.Description,
			Stock:       p.Stock,
			AverageCost: costs[p.ID].Round(2),
			StockValue:  costs[p.ID].Mul(decimal.NewFromInt(p.Stock)).Round(2),
		})
	}
	return out, nil
}

// Ledger reconstruye el historial de movimientos de stock de un producto.
func (uc *UseCase) Ledger(companyID, productID string) (*dto.LedgerResponse, error) {
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	snap, err := uc.loadSnapshot(companyID)
	if err != nil {
		return nil, err
	}
	history := ledger.Reconstruct(product, snap.sales, snap.purchases)

	out := &dto.LedgerResponse{
		ProductID:      product.ID,
		Code:           product.Code,
		InitialBalance: history.InitialBalance,
		FinalBalance:   history.FinalBalance,
		CurrentStock:   product.Stock,
	}
	for _, m := range history.Movements {
		out.Movements = append(out.Movements, dto.LedgerMovementDTO{
			Date:      m.Date,
			Direction: m.Direction,
			Document:  m.Document,
			Quantity:  m.Quantity,
			Balance:   m.Balance,
		})
	}
	return out, nil
}

func toTopDTOs(entities []report.TopEntity) []dto.TopEntityDTO {
	out := make([]dto.TopEntityDTO, 0, len(entities))
	for _, e := range entities {
		out = append(out, dto.TopEntityDTO{ID: e.ID, Name: e.Name, Count: e.Count, Total: e.Total})
	}
	return out
}

// parsePeriod interpreta el rango de fechas del query string. Fechas vacías
// significan "sin límite" por ese extremo; el fin de período es inclusivo
// hasta el final del día.
func parsePeriod(startStr, endStr string) (report.Period, error) {
	var p report.Period
	loc := time.Now().Location()

	if startStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return report.Period{}, fmt.Errorf("start_date inválido: %w", domain.ErrInvalidInput)
		}
		p.From = start
	}
	if endStr != "" {
		end, err := time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return report.Period{}, fmt.Errorf("end_date inválido: %w", domain.ErrInvalidInput)
		}
		p.To = end.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	if !p.From.IsZero() && !p.To.IsZero() && p.From.After(p.To) {
		return report.Period{}, fmt.Errorf("start_date posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return p, nil
}

func periodDTO(p report.Period) dto.PeriodDTO {
	out := dto.PeriodDTO{}
	if !p.From.IsZero() {
		out.StartDate = p.From.Format("2006-01-02")
	}
	if !p.To.IsZero() {
		out.EndDate = p.To.Format("2006-01-02")
	}
	return out
}
