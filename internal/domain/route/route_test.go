package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/domain/route"
)

var (
	bogota   = route.Point{Latitude: 4.711, Longitude: -74.0721}
	medellin = route.Point{Latitude: 6.2442, Longitude: -75.5812}
	cali     = route.Point{Latitude: 3.4516, Longitude: -76.532}
)

func TestHaversineKm_DistanciasConocidas(t *testing.T) {
	// Bogotá–Medellín ≈ 246 km en línea recta
	d := route.HaversineKm(bogota, medellin)
	assert.InDelta(t, 246, d, 10)

	// Distancia a sí mismo = 0
	assert.InDelta(t, 0, route.HaversineKm(bogota, bogota), 0.001)

	// Simetría
	assert.InDelta(t, d, route.HaversineKm(medellin, bogota), 0.001)
}

func TestPlan_ConcatenaYRegresaAlOrigen(t *testing.T) {
	stops := []route.Stop{
		{CustomerID: "c1", Name: "Cliente Medellín", Point: medellin},
		{CustomerID: "c2", Name: "Cliente Cali", Point: cali},
	}

	r := route.Plan(bogota, stops)

	require.Len(t, r.Legs, 3, "n paradas producen n+1 tramos (incluye regreso)")
	assert.Equal(t, "origen", r.Legs[0].From)
	assert.Equal(t, "Cliente Medellín", r.Legs[0].To)
	assert.Equal(t, "Cliente Cali", r.Legs[1].To)
	assert.Equal(t, "origen", r.Legs[2].To)

	// El total es la suma de los tramos
	sum := 0.0
	for _, l := range r.Legs {
		sum += l.DistanceKm
	}
	assert.InDelta(t, r.TotalKm, sum, 0.1)
	assert.Greater(t, r.TotalKm, 0.0)
}

func TestPlan_RespetaElOrdenDado(t *testing.T) {
	// El planificador no optimiza: el orden de las paradas es el solicitado.
	stops := []route.Stop{
		{CustomerID: "c2", Name: "B", Point: cali},
		{CustomerID: "c1", Name: "A", Point: medellin},
	}
	r := route.Plan(bogota, stops)
	assert.Equal(t, "B", r.Stops[0].Name)
	assert.Equal(t, "A", r.Stops[1].Name)
}

func TestPlan_SinParadas(t *testing.T) {
	r := route.Plan(bogota, nil)
	assert.Empty(t, r.Legs)
	assert.Zero(t, r.TotalKm)
}
