package usecase

import (
	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
	"github.com/gestorpyme/gestor-api/internal/domain/route"
)

// RouteUseCase planifica la ruta de visitas a clientes geolocalizados.
type RouteUseCase struct {
	customers repository.CustomerRepository
}

// NewRouteUseCase construye el caso de uso.
func NewRouteUseCase(customers repository.CustomerRepository) *RouteUseCase {
	return &RouteUseCase{customers: customers}
}

// Plan arma el recorrido origen → clientes → origen en el orden solicitado.
// Los clientes sin coordenadas (o de otra empresa) se reportan en Skipped en
// lugar de fallar la petición completa.
func (uc *RouteUseCase) Plan(companyID string, in dto.RoutePlanRequest) (*dto.RoutePlanResponse, error) {
	customers, err := uc.customers.GetByIDs(in.CustomerIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(customers))
	for i, c := range customers {
		byID[c.ID] = i
	}

	origin := route.Point{Latitude: in.OriginLatitude, Longitude: in.OriginLongitude}
	stops := make([]route.Stop, 0, len(in.CustomerIDs))
	var skipped []string

	// Se respeta el orden en que el usuario pidió las visitas.
	for _, id := range in.CustomerIDs {
		i, ok := byID[id]
		if !ok {
			skipped = append(skipped, id)
			continue
		}
		c := customers[i]
		if c.CompanyID != companyID || !c.HasLocation() {
			skipped = append(skipped, id)
			continue
		}
		stops = append(stops, route.Stop{
			CustomerID: c.ID,
			Name:       c.Name,
			Point:      route.Point{Latitude: *c.Latitude, Longitude: *c.Longitude},
		})
	}

	planned := route.Plan(origin, stops)

	out := &dto.RoutePlanResponse{
		Stops:           make([]dto.RouteStopDTO, 0, len(planned.Stops)),
		Legs:            make([]dto.RouteLegDTO, 0, len(planned.Legs)),
		TotalDistanceKm: planned.TotalKm,
		Skipped:         skipped,
	}
	for _, s := range planned.Stops {
		out.Stops = append(out.Stops, dto.RouteStopDTO{
			CustomerID: s.CustomerID,
			Name:       s.Name,
			Latitude:   s.Point.Latitude,
			Longitude:  s.Point.Longitude,
		})
	}
	for _, l := range planned.Legs {
		out.Legs = append(out.Legs, dto.RouteLegDTO{From: l.From, To: l.To, DistanceKm: l.DistanceKm})
	}
	return out, nil
}
