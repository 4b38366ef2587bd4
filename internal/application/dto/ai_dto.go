package dto

import "time"

// ChatRequest entrada de POST /api/ai/chat.
type ChatRequest struct {
	Question string `json:"question" validate:"required,min=3,max=500"`
}

// ChatResponse respuesta del asistente. Query es el SQL generado (solo
// lectura, máx. 20 filas) que respaldó la respuesta; útil para auditoría.
type ChatResponse struct {
	Answer   string `json:"answer"`
	Query    string `json:"query,omitempty"`
	RowCount int    `json:"row_count"`
}

// InsightDTO un hallazgo de las heurísticas de negocio.
type InsightDTO struct {
	Kind        string     `json:"kind"` // demand_spike | co_purchase | inactive_supplier
	Title       string     `json:"title"`
	Detail      string     `json:"detail"`
	ProductID   string     `json:"product_id,omitempty"`
	SupplierID  string     `json:"supplier_id,omitempty"`
	LastOrderAt *time.Time `json:"last_order_at,omitempty"`
}

// InsightsResponse respuesta de GET /api/ai/insights. Una lista vacía no es
// un error: significa "sin hallazgos" para el período analizado.
type InsightsResponse struct {
	Insights []InsightDTO `json:"insights"`
	Message  string       `json:"message,omitempty"` // texto cuando no hay hallazgos
}
