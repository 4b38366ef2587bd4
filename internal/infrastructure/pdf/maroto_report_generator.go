// Package pdf genera el reporte de ventas descargable usando Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa │ "Reporte de ventas" + período            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Ingresos / Utilidad / Pedidos                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant | Ingreso | Costo | Margen │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/reports"
)

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// SalesReport genera el PDF del reporte de ventas y devuelve sus bytes.
func (g *MarotoReportGenerator) SalesReport(companyName string, rep *dto.SalesReportDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(companyName, rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, p := range rep.Products {
		m.AddRows(productRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func periodLabel(p dto.PeriodDTO) string {
	switch {
	case p.StartDate == "" && p.EndDate == "":
		return "Histórico completo"
	case p.StartDate == "":
		return "Hasta " + p.EndDate
	case p.EndDate == "":
		return "Desde " + p.StartDate
	}
	return p.StartDate + " a " + p.EndDate
}

func headerRow(companyName string, rep *dto.SalesReportDTO) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(periodLabel(rep.Period), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 3,
			}),
		),
	)
}

func summaryRow(rep *dto.SalesReportDTO) core.Row {
	return row.New(14).Add(
		summaryCol("Ingresos", "$"+rep.TotalRevenue.StringFixed(2)),
		summaryCol("Utilidad", "$"+rep.TotalProfit.StringFixed(2)),
		summaryCol("Pedidos facturados", fmt.Sprintf("%d", rep.OrderCount)),
	)
}

func summaryCol(label, value string) core.Col {
	return col.New(4).Add(
		text.New(label, props.Text{Size: 8, Color: colorGray, Top: 1}),
		text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(7).Add(
		col.New(2).Add(text.New("Código", header)),
		col.New(3).Add(text.New("Producto", header)),
		col.New(1).Add(text.New("Cant.", headerRight)),
		col.New(2).Add(text.New("Ingreso", headerRight)),
		col.New(2).Add(text.New("Utilidad", headerRight)),
		col.New(2).Add(text.New("Margen %", headerRight)),
	)
}

func productRow(p dto.ProductProfitDTO) core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	return row.New(6).Add(
		col.New(2).Add(text.New(p.Code, cell)),
		col.New(3).Add(text.New(p.Description, cell)),
		col.New(1).Add(text.New(fmt.Sprintf("%d", p.QuantitySold), cellRight)),
		col.New(2).Add(text.New("$"+p.Revenue.StringFixed(2), cellRight)),
		col.New(2).Add(text.New("$"+p.Profit.StringFixed(2), cellRight)),
		col.New(2).Add(text.New(p.MarginPct.StringFixed(2), cellRight)),
	)
}
