// Package route arma el recorrido de visitas a clientes: origen → clientes en
// el orden solicitado → origen. No optimiza el orden ni llama a servicios de
// ruteo externos; las distancias de cada tramo se estiman con haversine
// (línea recta sobre la esfera, no distancia vial).
package route

import "math"

const earthRadiusKm = 6371.0

// Point coordenada geográfica.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Stop una parada del recorrido.
type Stop struct {
	CustomerID string
	Name       string
	Point      Point
}

// Leg un tramo entre dos paradas consecutivas.
type Leg struct {
	From       string // "origen" o nombre del cliente
	To         string
	DistanceKm float64
}

// Route recorrido completo con distancias por tramo.
type Route struct {
	Stops   []Stop
	Legs    []Leg
	TotalKm float64
}

// HaversineKm distancia en km entre dos puntos sobre la esfera terrestre.
func HaversineKm(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// Plan concatena origen → paradas (en el orden dado) → origen y calcula la
// distancia de cada tramo. Sin paradas devuelve una ruta vacía.
func Plan(origin Point, stops []Stop) Route {
	if len(stops) == 0 {
		return Route{Stops: []Stop{}, Legs: []Leg{}}
	}

	legs := make([]Leg, 0, len(stops)+1)
	total := 0.0

	prevPoint := origin
	prevName := "origen"
	for _, s := range stops {
		d := HaversineKm(prevPoint, s.Point)
		legs = append(legs, Leg{From: prevName, To: s.Name, DistanceKm: round2(d)})
		total += d
		prevPoint = s.Point
		prevName = s.Name
	}

	// Tramo de regreso al origen
	back := HaversineKm(prevPoint, origin)
	legs = append(legs, Leg{From: prevName, To: "origen", DistanceKm: round2(back)})
	total += back

	return Route{Stops: stops, Legs: legs, TotalKm: round2(total)}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
