// Package report implementa el motor de agregados de negocio: ingresos,
// costo promedio ponderado, valor de inventario, rentabilidad, curva Pareto,
// rankings Top-N y stock ocioso. Todas las funciones son puras y operan sobre
// el snapshot en memoria de pedidos y productos que entrega la capa de
// aplicación; solo los pedidos cumplidos (Faturado/Recebido) cuentan.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
)

var hundred = decimal.NewFromInt(100)

// Period es un rango de fechas inclusivo. Zero value = sin filtro.
type Period struct {
	From time.Time
	To   time.Time
}

// Contains indica si la fecha cae dentro del período (bordes inclusivos).
func (p Period) Contains(t time.Time) bool {
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && t.After(p.To) {
		return false
	}
	return true
}

// FilterFulfilled devuelve los pedidos cumplidos cuya fecha cae en el período.
func FilterFulfilled(orders []*entity.Order, p Period) []*entity.Order {
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if order.IsFulfilled(o.Kind, o.Status) && p.Contains(o.Date) {
			out = append(out, o)
		}
	}
	return out
}

// TotalRevenue suma el totalValue de los pedidos de venta cumplidos filtrados.
func TotalRevenue(salesOrders []*entity.Order, p Period) decimal.Decimal {
	total := decimal.Zero
	for _, o := range FilterFulfilled(salesOrders, p) {
		total = total.Add(o.TotalValue)
	}
	return total
}

// AverageCosts calcula el costo promedio ponderado por producto:
// totalCosto / totalCantidad sobre TODAS las líneas de compras Recebido
// (histórico completo, sin filtro de fechas; no hay FIFO/LIFO).
// Un producto sin cantidad recibida tiene costo 0 (sin división por cero).
func AverageCosts(purchaseOrders []*entity.Order) map[string]decimal.Decimal {
	totalCost := make(map[string]decimal.Decimal)
	totalQty := make(map[string]int64)
	for _, o := range FilterFulfilled(purchaseOrders, Period{}) {
		for _, it := range o.Items {
			totalCost[it.ProductID] = totalCost[it.ProductID].Add(it.LineTotal())
			totalQty[it.ProductID] += it.Quantity
		}
	}
	costs := make(map[string]decimal.Decimal, len(totalCost))
	for id, cost := range totalCost {
		qty := totalQty[id]
		if qty <= 0 {
			costs[id] = decimal.Zero
			continue
		}
		costs[id] = cost.Div(decimal.NewFromInt(qty))
	}
	return costs
}

// AverageCost devuelve el costo promedio de un producto (0 si nunca recibió).
func AverageCost(productID string, purchaseOrders []*entity.Order) decimal.Decimal {
	if c, ok := AverageCosts(purchaseOrders)[productID]; ok {
		return c
	}
	return decimal.Zero
}

// StockValue suma stock × costoPromedio sobre todos los productos.
func StockValue(products []*entity.Product, purchaseOrders []*entity.Order) decimal.Decimal {
	costs := AverageCosts(purchaseOrders)
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(costs[p.ID].Mul(decimal.NewFromInt(p.Stock)))
	}
	return total
}

// ProductProfit rentabilidad de un producto en el período.
type ProductProfit struct {
	ProductID   string
	Code        string
	Description string
	QuantitySold int64
	Revenue     decimal.Decimal
	AverageCost decimal.Decimal
	Profit      decimal.Decimal // Revenue − QuantitySold × AverageCost
	MarginPct   decimal.Decimal // Profit / Revenue × 100; 0 si Revenue es 0
}

// Profitability calcula rentabilidad por producto sobre las ventas cumplidas
// del período. El costo promedio es histórico completo (ver AverageCosts).
// El resultado queda ordenado por ingreso descendente.
func Profitability(products []*entity.Product, salesOrders, purchaseOrders []*entity.Order, p Period) []ProductProfit {
	costs := AverageCosts(purchaseOrders)

	revenue := make(map[string]decimal.Decimal)
	qtySold := make(map[string]int64)
	for _, o := range FilterFulfilled(salesOrders, p) {
		for _, it := range o.Items {
			revenue[it.ProductID] = revenue[it.ProductID].Add(it.LineTotal())
			qtySold[it.ProductID] += it.Quantity
		}
	}

	out := make([]ProductProfit, 0, len(products))
	for _, prod := range products {
		rev := revenue[prod.ID]
		qty := qtySold[prod.ID]
		cost := costs[prod.ID]
		profit := rev.Sub(cost.Mul(decimal.NewFromInt(qty)))
		margin := decimal.Zero
		if rev.IsPositive() {
			margin = profit.Div(rev).Mul(hundred).Round(2)
		}
		out = append(out, ProductProfit{
			ProductID:    prod.ID,
			Code:         prod.Code,
			Description:  prod.Description,
			QuantitySold: qty,
			Revenue:      rev.Round(2),
			AverageCost:  cost.Round(2),
			Profit:       profit.Round(2),
			MarginPct:    margin,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// ParetoEntry una posición de la curva Pareto/ABC.
type ParetoEntry struct {
	Rank          int
	ProductID     string
	Code          string
	Description   string
	Revenue       decimal.Decimal
	RevenuePct    decimal.Decimal // participación % en el ingreso total
	CumulativePct decimal.Decimal // acumulado descendente; el último ≈ 100
}

// Pareto ordena los productos por ingreso descendente y calcula la
// participación acumulada por posición. La suma de RevenuePct sobre todo el
// conjunto es 100% (± redondeo a 2 decimales).
func Pareto(products []*entity.Product, salesOrders []*entity.Order, p Period) []ParetoEntry {
	profits := rankedRevenue(products, salesOrders, p)

	total := decimal.Zero
	for _, pr := range profits {
		total = total.Add(pr.Revenue)
	}

	entries := make([]ParetoEntry, 0, len(profits))
	cumulative := decimal.Zero
	for i, pr := range profits {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = pr.Revenue.Div(total).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(pct)
		entries = append(entries, ParetoEntry{
			Rank:          i + 1,
			ProductID:     pr.ProductID,
			Code:          pr.Code,
			Description:   pr.Description,
			Revenue:       pr.Revenue,
			RevenuePct:    pct,
			CumulativePct: cumulative.Round(2),
		})
	}
	return entries
}

// rankedRevenue: ingreso por producto en el período, descendente.
func rankedRevenue(products []*entity.Product, salesOrders []*entity.Order, p Period) []ProductProfit {
	revenue := make(map[string]decimal.Decimal)
	for _, o := range FilterFulfilled(salesOrders, p) {
		for _, it := range o.Items {
			revenue[it.ProductID] = revenue[it.ProductID].Add(it.LineTotal())
		}
	}
	out := make([]ProductProfit, 0, len(products))
	for _, prod := range products {
		out = append(out, ProductProfit{
			ProductID:   prod.ID,
			Code:        prod.Code,
			Description: prod.Description,
			Revenue:     revenue[prod.ID].Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	return out
}

// TopEntity una entidad agrupada (cliente, proveedor o producto) con su total.
type TopEntity struct {
	ID    string
	Name  string
	Count int             // pedidos (o líneas, para productos) que aportan
	Total decimal.Decimal // ingreso de ventas o valor de compras según el caso
}

// TopCounterparties agrupa los pedidos cumplidos del período por contraparte
// (clientes en ventas, proveedores en compras), suma su totalValue y devuelve
// los primeros n en orden descendente.
func TopCounterparties(orders []*entity.Order, p Period, n int) []TopEntity {
	totals := make(map[string]*TopEntity)
	for _, o := range FilterFulfilled(orders, p) {
		e, ok := totals[o.CounterpartyID]
		if !ok {
			e = &TopEntity{ID: o.CounterpartyID, Name: o.CounterpartyName}
			totals[o.CounterpartyID] = e
		}
		e.Count++
		e.Total = e.Total.Add(o.TotalValue)
	}
	return topN(totals, n)
}

// TopProducts agrupa las líneas de venta cumplidas del período por producto.
func TopProducts(salesOrders []*entity.Order, p Period, n int) []TopEntity {
	totals := make(map[string]*TopEntity)
	for _, o := range FilterFulfilled(salesOrders, p) {
		for _, it := range o.Items {
			e, ok := totals[it.ProductID]
			if !ok {
				e = &TopEntity{ID: it.ProductID, Name: it.ProductName}
				totals[it.ProductID] = e
			}
			e.Count++
			e.Total = e.Total.Add(it.LineTotal())
		}
	}
	return topN(totals, n)
}

func topN(totals map[string]*TopEntity, n int) []TopEntity {
	out := make([]TopEntity, 0, len(totals))
	for _, e := range totals {
		e.Total = e.Total.Round(2)
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// IdleStock devuelve los productos con stock > 0 y cero líneas de venta
// cumplidas dentro del período.
func IdleStock(products []*entity.Product, salesOrders []*entity.Order, p Period) []*entity.Product {
	sold := make(map[string]bool)
	for _, o := range FilterFulfilled(salesOrders, p) {
		for _, it := range o.Items {
			sold[it.ProductID] = true
		}
	}
	var idle []*entity.Product
	for _, prod := range products {
		if prod.Stock > 0 && !sold[prod.ID] {
			idle = append(idle, prod)
		}
	}
	return idle
}
