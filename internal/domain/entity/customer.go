package entity

import "time"

// Customer representa un cliente de la empresa.
// Latitude/Longitude son opcionales (nil si el cliente no está geolocalizado);
// las usan el mapa y el planificador de rutas.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string
	Email     string
	Phone     string
	Address   string
	City      string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasLocation indica si el cliente tiene coordenadas para mapa/ruta.
func (c *Customer) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}
