package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/reports"
)

// ReportHandler maneja las peticiones HTTP de reportes (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func reportRequest(c *fiber.Ctx) dto.ReportRequest {
	return dto.ReportRequest{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		TopN:      c.QueryInt("top_n", 0),
	}
}

// Sales godoc
// @Summary      Reporte de ventas y rentabilidad por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (vacío = desde siempre)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (vacío = hasta hoy)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	out, err := h.uc.Sales(GetCompanyID(c), reportRequest(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF descargable
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	pdf, err := h.uc.SalesPDF(GetCompanyID(c), reportRequest(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdf)
}

// Stock godoc
// @Summary      Inventario valorizado a costo promedio de compra
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockReportDTO
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	out, err := h.uc.Stock(GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Pareto godoc
// @Summary      Curva Pareto/ABC de ingresos por producto
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ParetoReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/pareto [get]
func (h *ReportHandler) Pareto(c *fiber.Ctx) error {
	out, err := h.uc.Pareto(GetCompanyID(c), reportRequest(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Top godoc
// @Summary      Top-N clientes, proveedores y productos del período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        top_n       query  int     false  "Tamaño del ranking (1-50)"  default(5)
// @Success      200  {object}  dto.TopReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/top [get]
func (h *ReportHandler) Top(c *fiber.Ctx) error {
	out, err := h.uc.Top(GetCompanyID(c), reportRequest(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// IdleStock godoc
// @Summary      Productos con stock y sin ventas en el período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.IdleStockDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/idle-stock [get]
func (h *ReportHandler) IdleStock(c *fiber.Ctx) error {
	out, err := h.uc.IdleStock(GetCompanyID(c), reportRequest(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
