package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
	"github.com/gestorpyme/gestor-api/internal/domain/report"
)

func day(d int) time.Time {
	return time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
}

// venta cumplida con una línea por producto: (productID, qty, precio).
func sale(num string, date time.Time, customerID, customerName string, lines ...[3]int64) *entity.Order {
	o := &entity.Order{
		Kind: entity.OrderKindSales, Number: num, Date: date,
		Status:         order.StatusInvoiced,
		CounterpartyID: customerID, CounterpartyName: customerName,
	}
	total := decimal.Zero
	for _, l := range lines {
		it := entity.OrderItem{
			ProductID: prodID(l[0]), ProductName: prodID(l[0]),
			Quantity: l[1], UnitPrice: decimal.NewFromInt(l[2]),
		}
		o.Items = append(o.Items, it)
		total = total.Add(it.LineTotal())
	}
	o.TotalValue = total
	return o
}

func purchase(num string, date time.Time, status string, lines ...[3]int64) *entity.Order {
	o := &entity.Order{
		Kind: entity.OrderKindPurchase, Number: num, Date: date, Status: status,
		CounterpartyID: "sup-1", CounterpartyName: "Proveedor Uno",
	}
	total := decimal.Zero
	for _, l := range lines {
		it := entity.OrderItem{
			ProductID: prodID(l[0]), Quantity: l[1], UnitPrice: decimal.NewFromInt(l[2]),
		}
		o.Items = append(o.Items, it)
		total = total.Add(it.LineTotal())
	}
	o.TotalValue = total
	return o
}

func prodID(n int64) string {
	return map[int64]string{1: "prod-1", 2: "prod-2", 3: "prod-3"}[n]
}

func product(n int64, stock int64) *entity.Product {
	return &entity.Product{ID: prodID(n), Code: prodID(n), Description: "Producto " + prodID(n), Stock: stock}
}

func TestTotalRevenue_SoloVentasCumplidasEnPeriodo(t *testing.T) {
	sales := []*entity.Order{
		sale("PV-00001", day(1), "c1", "Cliente A", [3]int64{1, 2, 100}), // 200
		sale("PV-00002", day(10), "c1", "Cliente A", [3]int64{1, 1, 100}),
		{Kind: entity.OrderKindSales, Date: day(2), Status: order.StatusPending, TotalValue: decimal.NewFromInt(9999)},
		{Kind: entity.OrderKindSales, Date: day(2), Status: order.StatusCancelled, TotalValue: decimal.NewFromInt(9999)},
	}
	p := report.Period{From: day(1), To: day(5)}
	assert.True(t, report.TotalRevenue(sales, p).Equal(decimal.NewFromInt(200)),
		"solo la venta Faturado dentro del rango debe sumar")

	// Sin filtro: las dos cumplidas
	assert.True(t, report.TotalRevenue(sales, report.Period{}).Equal(decimal.NewFromInt(300)))
}

func TestAverageCost_PonderadoSobreTodasLasCompras(t *testing.T) {
	purchases := []*entity.Order{
		purchase("PC-00001", day(1), order.StatusReceived, [3]int64{1, 10, 10}), // 10 uds a $10
		purchase("PC-00002", day(2), order.StatusReceived, [3]int64{1, 30, 20}), // 30 uds a $20
	}
	// (100 + 600) / 40 = 17.5
	cost := report.AverageCost("prod-1", purchases)
	assert.True(t, cost.Equal(decimal.NewFromFloat(17.5)), "costo ponderado esperado 17.5, fue %s", cost)
}

func TestAverageCost_SinComprasRecibidasEsCero(t *testing.T) {
	purchases := []*entity.Order{
		purchase("PC-00001", day(1), order.StatusPending, [3]int64{1, 10, 10}),
		purchase("PC-00002", day(2), order.StatusCancelled, [3]int64{1, 5, 10}),
	}
	assert.True(t, report.AverageCost("prod-1", purchases).IsZero(),
		"producto sin cantidad recibida debe tener costo 0, sin división por cero")
}

func TestStockValue_StockPorCostoPromedio(t *testing.T) {
	products := []*entity.Product{product(1, 100), product(2, 5)}
	purchases := []*entity.Order{
		purchase("PC-00001", day(1), order.StatusReceived, [3]int64{1, 50, 10}), // prod-1 a $10
	}
	// prod-1: 100 × 10 = 1000; prod-2 sin compras: 0
	v := report.StockValue(products, purchases)
	assert.True(t, v.Equal(decimal.NewFromInt(1000)), "valor esperado 1000, fue %s", v)
}

func TestProfitability_MargenYCero(t *testing.T) {
	products := []*entity.Product{product(1, 10), product(2, 10)}
	purchases := []*entity.Order{
		purchase("PC-00001", day(1), order.StatusReceived, [3]int64{1, 10, 10}),
	}
	sales := []*entity.Order{
		sale("PV-00001", day(2), "c1", "Cliente A", [3]int64{1, 4, 25}), // ingreso 100, costo 40
	}

	profits := report.Profitability(products, sales, purchases, report.Period{})
	require.Len(t, profits, 2)

	p1 := profits[0]
	assert.Equal(t, "prod-1", p1.ProductID)
	assert.True(t, p1.Profit.Equal(decimal.NewFromInt(60)), "profit esperado 60, fue %s", p1.Profit)
	assert.True(t, p1.MarginPct.Equal(decimal.NewFromInt(60)), "margen esperado 60%%, fue %s", p1.MarginPct)

	p2 := profits[1]
	assert.True(t, p2.Revenue.IsZero())
	assert.True(t, p2.MarginPct.IsZero(), "margen debe ser 0 cuando el ingreso es 0")
}

func TestPareto_AcumuladoCierraEnCien(t *testing.T) {
	products := []*entity.Product{product(1, 0), product(2, 0), product(3, 0)}
	sales := []*entity.Order{
		sale("PV-00001", day(1), "c1", "A", [3]int64{1, 1, 500}),
		sale("PV-00002", day(1), "c1", "A", [3]int64{2, 1, 300}),
		sale("PV-00003", day(1), "c1", "A", [3]int64{3, 1, 200}),
	}

	entries := report.Pareto(products, sales, report.Period{})
	require.Len(t, entries, 3)

	// Orden descendente por ingreso y ranking consecutivo
	assert.Equal(t, "prod-1", entries[0].ProductID)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 3, entries[2].Rank)

	// Suma de participaciones = 100 ± redondeo
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.RevenuePct)
	}
	diff := sum.Sub(decimal.NewFromInt(100)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.05)),
		"la participación total debe cerrar en 100%% (±redondeo), fue %s", sum)
	assert.True(t, entries[2].CumulativePct.Sub(decimal.NewFromInt(100)).Abs().LessThanOrEqual(decimal.NewFromFloat(0.05)))
}

func TestPareto_SinVentasNoDividePorCero(t *testing.T) {
	products := []*entity.Product{product(1, 3)}
	entries := report.Pareto(products, nil, report.Period{})
	require.Len(t, entries, 1)
	assert.True(t, entries[0].RevenuePct.IsZero())
}

func TestTopCounterparties_AgrupaYOrdena(t *testing.T) {
	sales := []*entity.Order{
		sale("PV-00001", day(1), "c1", "Cliente A", [3]int64{1, 1, 100}),
		sale("PV-00002", day(2), "c2", "Cliente B", [3]int64{1, 1, 400}),
		sale("PV-00003", day(3), "c1", "Cliente A", [3]int64{1, 1, 150}),
	}
	top := report.TopCounterparties(sales, report.Period{}, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "Cliente B", top[0].Name)
	assert.True(t, top[0].Total.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, "Cliente A", top[1].Name)
	assert.True(t, top[1].Total.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 2, top[1].Count)
}

func TestTopProducts_RespetaN(t *testing.T) {
	sales := []*entity.Order{
		sale("PV-00001", day(1), "c1", "A", [3]int64{1, 1, 100}, [3]int64{2, 1, 200}, [3]int64{3, 1, 300}),
	}
	top := report.TopProducts(sales, report.Period{}, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "prod-3", top[0].ID)
}

func TestIdleStock_ConStockYSinVentasEnVentana(t *testing.T) {
	products := []*entity.Product{product(1, 10), product(2, 0), product(3, 4)}
	sales := []*entity.Order{
		sale("PV-00001", day(10), "c1", "A", [3]int64{1, 1, 100}),
	}
	p := report.Period{From: day(5), To: day(15)}

	idle := report.IdleStock(products, sales, p)
	require.Len(t, idle, 1, "prod-1 vendió en la ventana y prod-2 no tiene stock")
	assert.Equal(t, "prod-3", idle[0].ID)
}
