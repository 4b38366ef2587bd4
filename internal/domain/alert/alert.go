// Package alert centraliza el cálculo de alertas de inventario. Antes cada
// vista evaluaba su propio predicado de stock bajo; aquí se deriva una sola
// vez por refresco de datos y todos los consumidores (dashboard, listados)
// leen el mismo resultado.
package alert

import "github.com/gestorpyme/gestor-api/internal/domain/entity"

// Tipos de alerta.
const (
	KindLowStock  = "low_stock"
	KindOverstock = "overstock"
)

// Severidades de stock bajo.
const (
	SeverityCritical = "critical" // stock agotado
	SeverityLow      = "low"      // stock <= mínimo
)

// Alert es una alerta derivada de un producto. No se persiste.
type Alert struct {
	Kind        string
	Severity    string
	ProductID   string
	Code        string
	Description string
	Stock       int64
	MinStock    int64
	MaxStock    int64
}

// LowStock indica si el producto está en condición de stock bajo.
func LowStock(p *entity.Product) bool {
	return p.Stock <= p.MinStock
}

// Evaluate deriva las alertas del conjunto de productos:
// stock <= minStock (crítica si 0) y stock > maxStock cuando hay máximo definido.
func Evaluate(products []*entity.Product) []Alert {
	var alerts []Alert
	for _, p := range products {
		if LowStock(p) {
			sev := SeverityLow
			if p.Stock == 0 {
				sev = SeverityCritical
			}
			alerts = append(alerts, Alert{
				Kind: KindLowStock, Severity: sev,
				ProductID: p.ID, Code: p.Code, Description: p.Description,
				Stock: p.Stock, MinStock: p.MinStock, MaxStock: p.MaxStock,
			})
			continue
		}
		if p.MaxStock > 0 && p.Stock > p.MaxStock {
			alerts = append(alerts, Alert{
				Kind: KindOverstock,
				ProductID: p.ID, Code: p.Code, Description: p.Description,
				Stock: p.Stock, MinStock: p.MinStock, MaxStock: p.MaxStock,
			})
		}
	}
	return alerts
}
