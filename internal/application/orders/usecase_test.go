package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/orders"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
	"github.com/gestorpyme/gestor-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore simula la base de datos; fakeTxRunner clona el store antes de
// ejecutar fn y solo publica el clon si fn termina sin error. Así los tests
// verifican la propiedad transaccional real: un error a mitad de camino
// (p. ej. stock insuficiente) no deja ningún cambio visible.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	products map[string]*entity.Product
	orders   map[string]*entity.Order
	seq      int64
	nums     map[string]int64 // companyID -> último consecutivo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: make(map[string]*entity.Product),
		orders:   make(map[string]*entity.Order),
		nums:     make(map[string]int64),
	}
}

func (s *fakeStore) clone() *fakeStore {
	c := newFakeStore()
	c.seq = s.seq
	for k, p := range s.products {
		cp := *p
		c.products[k] = &cp
	}
	for k, o := range s.orders {
		co := *o
		co.Items = append([]entity.OrderItem(nil), o.Items...)
		c.orders[k] = &co
	}
	for k, v := range s.nums {
		c.nums[k] = v
	}
	return c
}

func (s *fakeStore) replaceWith(c *fakeStore) {
	s.products = c.products
	s.orders = c.orders
	s.seq = c.seq
	s.nums = c.nums
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByCompanyAndCode(companyID, code string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) AdjustStock(productID string, delta int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return domain.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) ListAllByCompany(companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Search(companyID, term string, limit int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeOrderRepo struct {
	s    *fakeStore
	kind string
}

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	r.s.seq++
	co := *o
	co.Seq = r.s.seq
	co.Items = append([]entity.OrderItem(nil), o.Items...)
	r.s.orders[o.ID] = &co
	o.Seq = co.Seq
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || o.Kind != r.kind {
		return nil, nil
	}
	co := *o
	co.Items = append([]entity.OrderItem(nil), o.Items...)
	return &co, nil
}

func (r *fakeOrderRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.Kind != r.kind || o.CompanyID != companyID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		co := *o
		out = append(out, &co)
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAllByCompany(companyID string) ([]*entity.Order, error) {
	return r.ListByCompany(companyID, "", 0, 0)
}

func (r *fakeOrderRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = updatedAt
	return nil
}

func (r *fakeOrderRepo) NextNumber(companyID string) (int64, error) {
	r.s.nums[companyID]++
	return r.s.nums[companyID], nil
}

type fakeCustomerRepo struct{ customers map[string]*entity.Customer }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error  { return nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error  { return nil }
func (r *fakeCustomerRepo) Delete(id string) error           { return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.customers[id], nil
}
func (r *fakeCustomerRepo) GetByIDs(ids []string) ([]*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *fakeCustomerRepo) Search(companyID, term string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}

type fakeSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (r *fakeSupplierRepo) Create(s *entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Update(s *entity.Supplier) error { return nil }
func (r *fakeSupplierRepo) Delete(id string) error          { return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *fakeSupplierRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Supplier, error) {
	return nil, nil
}
func (r *fakeSupplierRepo) Search(companyID, term string, limit int) ([]*entity.Supplier, error) {
	return nil, nil
}

// fakeTxRunner ejecuta fn sobre un clon del store y publica el clon solo si
// fn no retorna error (commit/rollback simulados).
type fakeTxRunner struct{ s *fakeStore }

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(r orders.TxRepos) error) error {
	c := tx.s.clone()
	err := fn(orders.TxRepos{
		SalesOrders:    &fakeOrderRepo{s: c, kind: entity.OrderKindSales},
		PurchaseOrders: &fakeOrderRepo{s: c, kind: entity.OrderKindPurchase},
		Products:       &fakeProductRepo{s: c},
	})
	if err != nil {
		return err
	}
	tx.s.replaceWith(c)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID  = "00000000-0000-0000-0000-0000000000aa"
	testProductID  = "11111111-1111-1111-1111-111111111111"
	testCustomerID = "22222222-2222-2222-2222-222222222222"
	testSupplierID = "33333333-3333-3333-3333-333333333333"
)

type fixture struct {
	store    *fakeStore
	sales    *orders.UseCase
	purchase *orders.UseCase
}

func newFixture(t *testing.T, initialStock int64) *fixture {
	t.Helper()
	store := newFakeStore()
	store.products[testProductID] = &entity.Product{
		ID:          testProductID,
		CompanyID:   testCompanyID,
		Code:        "CAF-001",
		Description: "Café tostado 500g",
		Price:       decimal.NewFromInt(25000),
		Stock:       initialStock,
		MinStock:    5,
	}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		testCustomerID: {ID: testCustomerID, CompanyID: testCompanyID, Name: "Tienda La Esquina"},
	}}
	suppliers := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		testSupplierID: {ID: testSupplierID, CompanyID: testCompanyID, Name: "Distribuidora Andina"},
	}}
	tx := &fakeTxRunner{s: store}
	return &fixture{
		store:    store,
		sales:    orders.NewSales(tx, &fakeOrderRepo{s: store, kind: entity.OrderKindSales}, &fakeProductRepo{s: store}, customers),
		purchase: orders.NewPurchase(tx, &fakeOrderRepo{s: store, kind: entity.OrderKindPurchase}, &fakeProductRepo{s: store}, suppliers),
	}
}

func (f *fixture) stock(t *testing.T) int64 {
	t.Helper()
	return f.store.products[testProductID].Stock
}

func itemsOf(qty int64) []dto.OrderItemRequest {
	return []dto.OrderItemRequest{{ProductID: testProductID, Quantity: qty}}
}

func boolPtr(b bool) *bool { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// Creación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSales_PendenteNoTocaStock(t *testing.T) {
	f := newFixture(t, 100)

	resp, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusPending, resp.Status, "la venta nace Pendente por defecto")
	assert.Equal(t, "PV-00001", resp.Number)
	assert.Equal(t, "Tienda La Esquina", resp.CounterpartyName, "snapshot del nombre del cliente")
	assert.True(t, resp.TotalValue.Equal(decimal.NewFromInt(750000)), "total = 30 * 25000 del catálogo")
	assert.EqualValues(t, 100, f.stock(t), "Pendente no afecta el stock")
}

func TestCreateSales_FulfillNowDescuentaStock(t *testing.T) {
	f := newFixture(t, 100)

	resp, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
		FulfillNow:     boolPtr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusInvoiced, resp.Status)
	assert.EqualValues(t, 70, f.stock(t), "cumplir la venta descuenta las unidades")
}

func TestCreateSales_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
		FulfillNow:     boolPtr(true),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 10, f.stock(t), "el stock no debe mutar")
	assert.Empty(t, f.store.orders, "el pedido no debe quedar creado (rollback)")
	assert.Zero(t, f.store.nums[testCompanyID], "el consecutivo tampoco avanza")
}

func TestCreateSales_PendenteConStockInsuficiente(t *testing.T) {
	f := newFixture(t, 10)

	// La validación aplica a toda venta, no solo a las que nacen cumplidas.
	_, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 10, f.stock(t), "el stock no debe mutar")
	assert.Empty(t, f.store.orders, "el pedido no debe quedar creado")
	assert.Zero(t, f.store.nums[testCompanyID], "el consecutivo tampoco avanza")
}

func TestCreate_LineaDuplicadaDelMismoProducto(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items: []dto.OrderItemRequest{
			{ProductID: testProductID, Quantity: 5},
			{ProductID: testProductID, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrDuplicate, "dos líneas del mismo producto se rechazan")
	assert.Empty(t, f.store.orders)

	_, err = f.purchase.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testSupplierID,
		Items: []dto.OrderItemRequest{
			{ProductID: testProductID, Quantity: 5},
			{ProductID: testProductID, Quantity: 3},
		},
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.EqualValues(t, 100, f.stock(t), "la compra rechazada no suma stock")
}

func TestCreatePurchase_RecebidoPorDefectoSumaStock(t *testing.T) {
	f := newFixture(t, 100)

	resp, err := f.purchase.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testSupplierID,
		Items:          itemsOf(50),
	})
	require.NoError(t, err)

	assert.Equal(t, order.StatusReceived, resp.Status, "la compra nace cumplida por defecto")
	assert.Equal(t, "PC-00001", resp.Number)
	assert.EqualValues(t, 150, f.stock(t))
}

func TestCreate_ContraparteDeOtraEmpresa(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.sales.Create(context.Background(), "otra-empresa", dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "no se revela la existencia de datos ajenos")
}

func TestCreate_FechaInvalida(t *testing.T) {
	f := newFixture(t, 100)

	_, err := f.sales.Create(context.Background(), testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Date:           "31/12/2025",
		Items:          itemsOf(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func TestSetStatus_CumplirYCancelarRevierteExacto(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
	})
	require.NoError(t, err)
	require.EqualValues(t, 100, f.stock(t))

	// Pendente → Faturado: descuenta
	resp, err := f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusInvoiced)
	require.NoError(t, err)
	assert.Equal(t, order.StatusInvoiced, resp.Status)
	assert.EqualValues(t, 70, f.stock(t))

	// Faturado → Cancelado: revierte exactamente
	resp, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, resp.Status)
	assert.EqualValues(t, 100, f.stock(t), "cancelar revierte el delta aplicado al cumplir")

	// Cancelar dos veces no tiene efecto adicional (idempotente)
	resp, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, resp.Status)
	assert.EqualValues(t, 100, f.stock(t))
}

func TestSetStatus_CancelarPendenteNoTocaStock(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(30),
	})
	require.NoError(t, err)

	resp, err := f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, resp.Status)
	assert.EqualValues(t, 100, f.stock(t), "un pedido nunca cumplido no tiene efecto que revertir")
}

func TestSetStatus_TransicionInvalida(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(5),
	})
	require.NoError(t, err)

	_, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusCancelled)
	require.NoError(t, err)

	// Cancelado es terminal: no se puede "descancelar"
	_, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusInvoiced)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatus_EstadoDeOtroTipoDePedido(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(5),
	})
	require.NoError(t, err)

	// "Recebido" solo existe para compras
	_, err = f.sales.SetStatus(ctx, testCompanyID, created.ID, order.StatusReceived)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSetStatus_PedidoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(5),
	})
	require.NoError(t, err)

	_, err = f.sales.SetStatus(ctx, "otra-empresa", created.ID, order.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelPurchase_RecibidaRevierteEntrada(t *testing.T) {
	f := newFixture(t, 100)
	ctx := context.Background()

	created, err := f.purchase.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testSupplierID,
		Items:          itemsOf(50),
	})
	require.NoError(t, err)
	require.EqualValues(t, 150, f.stock(t))

	_, err = f.purchase.SetStatus(ctx, testCompanyID, created.ID, order.StatusCancelled)
	require.NoError(t, err)
	assert.EqualValues(t, 100, f.stock(t), "cancelar la compra recibida devuelve el stock a su valor previo")
}

func TestCancelPurchase_StockYaConsumidoNoPuedeQuedarNegativo(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	// Entran 50 unidades por compra
	compra, err := f.purchase.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testSupplierID,
		Items:          itemsOf(50),
	})
	require.NoError(t, err)
	require.EqualValues(t, 50, f.stock(t))

	// Se venden 40 de esas unidades
	_, err = f.sales.Create(ctx, testCompanyID, dto.CreateOrderRequest{
		CounterpartyID: testCustomerID,
		Items:          itemsOf(40),
		FulfillNow:     boolPtr(true),
	})
	require.NoError(t, err)
	require.EqualValues(t, 10, f.stock(t))

	// Revertir la compra dejaría el stock en -40: debe rechazarse atómicamente
	_, err = f.purchase.SetStatus(ctx, testCompanyID, compra.ID, order.StatusCancelled)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 10, f.stock(t), "el rechazo no deja cambios parciales")

	got, err := f.purchase.GetByID(testCompanyID, compra.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusReceived, got.Status, "el estado del pedido tampoco cambia")
}
