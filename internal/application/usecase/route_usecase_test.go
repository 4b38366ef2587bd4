package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
)

type fakeCustomerRepoRoutes struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepoRoutes) Create(*entity.Customer) error { return nil }
func (f *fakeCustomerRepoRoutes) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepoRoutes) GetByIDs(ids []string) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, id := range ids {
		if c, ok := f.customers[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeCustomerRepoRoutes) Update(*entity.Customer) error { return nil }
func (f *fakeCustomerRepoRoutes) ListByCompany(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepoRoutes) Search(string, string, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepoRoutes) Delete(string) error { return nil }

func ptr(f float64) *float64 { return &f }

func routeFixture() *usecase.RouteUseCase {
	repo := &fakeCustomerRepoRoutes{customers: map[string]*entity.Customer{
		"c-bogota": {ID: "c-bogota", CompanyID: "emp-1", Name: "Cliente Bogotá",
			Latitude: ptr(4.711), Longitude: ptr(-74.0721)},
		"c-chia": {ID: "c-chia", CompanyID: "emp-1", Name: "Cliente Chía",
			Latitude: ptr(4.8612), Longitude: ptr(-74.0326)},
		"c-sin-gps": {ID: "c-sin-gps", CompanyID: "emp-1", Name: "Cliente sin ubicación"},
		"c-ajeno":   {ID: "c-ajeno", CompanyID: "emp-2", Name: "Cliente de otra empresa",
			Latitude: ptr(4.65), Longitude: ptr(-74.1)},
	}}
	return usecase.NewRouteUseCase(repo)
}

func TestPlan_RutaConParadasYRegreso(t *testing.T) {
	uc := routeFixture()

	out, err := uc.Plan("emp-1", dto.RoutePlanRequest{
		OriginLatitude:  4.6097,
		OriginLongitude: -74.0817,
		CustomerIDs:     []string{"c-bogota", "c-chia"},
	})
	require.NoError(t, err)

	require.Len(t, out.Stops, 2)
	assert.Equal(t, "Cliente Bogotá", out.Stops[0].Name, "debe respetar el orden solicitado")
	assert.Equal(t, "Cliente Chía", out.Stops[1].Name)

	// origen→parada1, parada1→parada2, parada2→origen
	require.Len(t, out.Legs, 3)
	assert.Equal(t, "origen", out.Legs[0].From)
	assert.Equal(t, "origen", out.Legs[2].To)
	assert.Greater(t, out.TotalDistanceKm, 0.0)
	assert.Empty(t, out.Skipped)
}

func TestPlan_OmiteClientesSinUbicacionYAjenos(t *testing.T) {
	uc := routeFixture()

	out, err := uc.Plan("emp-1", dto.RoutePlanRequest{
		OriginLatitude:  4.6097,
		OriginLongitude: -74.0817,
		CustomerIDs:     []string{"c-bogota", "c-sin-gps", "c-ajeno", "c-inexistente"},
	})
	require.NoError(t, err)

	require.Len(t, out.Stops, 1)
	assert.Equal(t, "c-bogota", out.Stops[0].CustomerID)
	assert.ElementsMatch(t, []string{"c-sin-gps", "c-ajeno", "c-inexistente"}, out.Skipped)
}

func TestPlan_SinParadasValidas(t *testing.T) {
	uc := routeFixture()

	out, err := uc.Plan("emp-1", dto.RoutePlanRequest{
		OriginLatitude:  4.6097,
		OriginLongitude: -74.0817,
		CustomerIDs:     []string{"c-sin-gps"},
	})
	require.NoError(t, err)

	assert.Empty(t, out.Stops)
	assert.Empty(t, out.Legs)
	assert.Zero(t, out.TotalDistanceKm)
	assert.Equal(t, []string{"c-sin-gps"}, out.Skipped)
}
