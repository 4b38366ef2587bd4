package dto

// RoutePlanRequest entrada de POST /api/routes/plan. El origen es la bodega
// o punto de partida; CustomerIDs son los clientes a visitar (se omiten en
// la respuesta los que no tienen coordenadas registradas).
type RoutePlanRequest struct {
	OriginLatitude  float64  `json:"origin_latitude" validate:"required,latitude"`
	OriginLongitude float64  `json:"origin_longitude" validate:"required,longitude"`
	CustomerIDs     []string `json:"customer_ids" validate:"required,min=1,dive,uuid"`
}

// RouteStopDTO una parada de la ruta planificada.
type RouteStopDTO struct {
	CustomerID string  `json:"customer_id"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// RouteLegDTO un tramo entre dos puntos consecutivos.
type RouteLegDTO struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKm float64 `json:"distance_km"`
}

// RoutePlanResponse ruta resultante. Skipped lista los clientes solicitados
// que no pudieron incluirse por falta de ubicación.
type RoutePlanResponse struct {
	Stops           []RouteStopDTO `json:"stops"`
	Legs            []RouteLegDTO  `json:"legs"`
	TotalDistanceKm float64        `json:"total_distance_km"`
	Skipped         []string       `json:"skipped,omitempty"`
}
