package reports_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/reports"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyID = "00000000-0000-0000-0000-00000000c001"
	productID = "00000000-0000-0000-0000-0000000000p1"
)

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(*entity.Product) error { return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetByCompanyAndCode(string, string) (*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Update(*entity.Product) error          { return nil }
func (f *fakeProductRepo) AdjustStock(string, int64) error       { return nil }
func (f *fakeProductRepo) Delete(string) error                   { return nil }
func (f *fakeProductRepo) Search(string, string, int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListByCompany(string, int, int) ([]*entity.Product, error) {
	return f.products, nil
}
func (f *fakeProductRepo) ListAllByCompany(string) ([]*entity.Product, error) {
	return f.products, nil
}

type fakeOrderRepo struct {
	orders []*entity.Order
	err    error
}

func (f *fakeOrderRepo) Create(*entity.Order) error { return nil }
func (f *fakeOrderRepo) GetByID(string) (*entity.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) ListByCompany(string, string, int, int) ([]*entity.Order, error) {
	return f.orders, f.err
}
func (f *fakeOrderRepo) ListAllByCompany(string) ([]*entity.Order, error) {
	return f.orders, f.err
}
func (f *fakeOrderRepo) UpdateStatus(string, string, time.Time) error { return nil }
func (f *fakeOrderRepo) NextNumber(string) (int64, error)             { return 1, nil }

type fakeCompanyRepo struct{}

func (f *fakeCompanyRepo) Create(*entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(string) (*entity.Company, error) {
	return &entity.Company{ID: companyID, Name: "Comercial El Faro"}, nil
}
func (f *fakeCompanyRepo) List(int, int) ([]*entity.Company, error) { return nil, nil }

type fakePDF struct {
	lastCompany string
	lastReport  *dto.SalesReportDTO
}

func (f *fakePDF) SalesReport(companyName string, rep *dto.SalesReportDTO) ([]byte, error) {
	f.lastCompany = companyName
	f.lastReport = rep
	return []byte("%PDF-1.4 fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: stock=100, compra Recebido 50 @ $10, venta Faturado 30 @ $20
// ──────────────────────────────────────────────────────────────────────────────

func fixture() (*fakeProductRepo, *fakeOrderRepo, *fakeOrderRepo, *reports.UseCase, *fakePDF) {
	date := func(d int) time.Time { return time.Date(2026, 5, d, 12, 0, 0, 0, time.UTC) }

	products := &fakeProductRepo{products: []*entity.Product{{
		ID: productID, CompanyID: companyID, Code: "CAF-500",
		Description: "Café tostado 500g", Stock: 100,
	}}}
	purchases := &fakeOrderRepo{orders: []*entity.Order{{
		ID: "po-1", CompanyID: companyID, Kind: entity.OrderKindPurchase,
		Number: "PC-00001", Date: date(1), Status: order.StatusReceived, Seq: 1,
		TotalValue: decimal.NewFromInt(500),
		Items: []entity.OrderItem{{ProductID: productID, ProductName: "Café tostado 500g",
			Quantity: 50, UnitPrice: decimal.NewFromInt(10)}},
	}}}
	sales := &fakeOrderRepo{orders: []*entity.Order{{
		ID: "so-1", CompanyID: companyID, Kind: entity.OrderKindSales,
		Number: "PV-00001", Date: date(2), Status: order.StatusInvoiced, Seq: 2,
		CounterpartyID: "cust-1", CounterpartyName: "Tienda La Esquina",
		TotalValue: decimal.NewFromInt(600),
		Items: []entity.OrderItem{{ProductID: productID, ProductName: "Café tostado 500g",
			Quantity: 30, UnitPrice: decimal.NewFromInt(20)}},
	}}}

	pdf := &fakePDF{}
	uc := reports.NewUseCase(products, sales, purchases, &fakeCompanyRepo{}, pdf)
	return products, sales, purchases, uc, pdf
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSales_EscenarioDeReferencia(t *testing.T) {
	_, _, _, uc, _ := fixture()

	rep, err := uc.Sales(companyID, dto.ReportRequest{})
	require.NoError(t, err)

	assert.True(t, rep.TotalRevenue.Equal(decimal.NewFromInt(600)),
		"ingreso = total de la venta Faturado")
	// utilidad = 600 − 30×10 (costo promedio) = 300
	assert.True(t, rep.TotalProfit.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 1, rep.OrderCount)

	require.Len(t, rep.Products, 1)
	assert.True(t, rep.Products[0].AverageCost.Equal(decimal.NewFromInt(10)),
		"costo promedio ponderado = 500/50 = $10")
}

func TestSales_FechaInvalidaRetornaErrInvalidInput(t *testing.T) {
	_, _, _, uc, _ := fixture()

	_, err := uc.Sales(companyID, dto.ReportRequest{StartDate: "31-12-2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Sales(companyID, dto.ReportRequest{StartDate: "2026-06-01", EndDate: "2026-05-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "start posterior a end debe rechazarse")
}

func TestSales_PeriodoSinVentas(t *testing.T) {
	_, _, _, uc, _ := fixture()

	rep, err := uc.Sales(companyID, dto.ReportRequest{StartDate: "2026-06-01", EndDate: "2026-06-30"})
	require.NoError(t, err)

	assert.True(t, rep.TotalRevenue.IsZero())
	assert.Equal(t, 0, rep.OrderCount)
}

func TestSalesPDF_IncluyeNombreDeEmpresa(t *testing.T) {
	_, _, _, uc, pdf := fixture()

	data, err := uc.SalesPDF(companyID, dto.ReportRequest{})
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, "Comercial El Faro", pdf.lastCompany)
	require.NotNil(t, pdf.lastReport)
	assert.True(t, pdf.lastReport.TotalRevenue.Equal(decimal.NewFromInt(600)))
}

func TestStock_ValorizadoACostoPromedio(t *testing.T) {
	_, _, _, uc, _ := fixture()

	rep, err := uc.Stock(companyID)
	require.NoError(t, err)

	// 100 unidades × $10 de costo promedio = $1000
	assert.True(t, rep.TotalValue.Equal(decimal.NewFromInt(1000)))
	require.Len(t, rep.Items, 1)
	assert.Equal(t, int64(100), rep.Items[0].Stock)
	assert.True(t, rep.Items[0].StockValue.Equal(decimal.NewFromInt(1000)))
}

func TestTop_AplicaDefaultYTope(t *testing.T) {
	_, _, _, uc, _ := fixture()

	rep, err := uc.Top(companyID, dto.ReportRequest{})
	require.NoError(t, err)
	require.Len(t, rep.TopCustomers, 1)
	assert.Equal(t, "Tienda La Esquina", rep.TopCustomers[0].Name)

	// top_n fuera de rango no debe fallar, solo acotarse
	_, err = uc.Top(companyID, dto.ReportRequest{TopN: 10000})
	assert.NoError(t, err)
}

func TestLedger_ReconstruyeYVerificaSaldo(t *testing.T) {
	_, _, _, uc, _ := fixture()

	rep, err := uc.Ledger(companyID, productID)
	require.NoError(t, err)

	assert.Equal(t, int64(80), rep.InitialBalance)
	assert.Equal(t, int64(100), rep.FinalBalance)
	assert.Equal(t, rep.CurrentStock, rep.FinalBalance,
		"reproducir el ledger debe terminar exactamente en el stock almacenado")
	require.Len(t, rep.Movements, 2)
	assert.Equal(t, "PC-00001", rep.Movements[0].Document)
	assert.Equal(t, int64(130), rep.Movements[0].Balance)
	assert.Equal(t, int64(100), rep.Movements[1].Balance)
}

func TestLedger_ProductoDeOtraEmpresa(t *testing.T) {
	products, sales, purchases, _, pdf := fixture()
	products.products[0].CompanyID = "otra-empresa"
	uc := reports.NewUseCase(products, sales, purchases, &fakeCompanyRepo{}, pdf)

	_, err := uc.Ledger(companyID, productID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSales_ErrorDePersistenciaSePropaga(t *testing.T) {
	products, _, purchases, _, pdf := fixture()
	broken := &fakeOrderRepo{err: errors.New("conexión perdida")}
	uc := reports.NewUseCase(products, broken, purchases, &fakeCompanyRepo{}, pdf)

	_, err := uc.Sales(companyID, dto.ReportRequest{})
	assert.Error(t, err)
}
