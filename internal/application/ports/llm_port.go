package ports

import "context"

// LLMService define el puerto de salida para el asistente de IA.
// Cualquier adaptador (Anthropic, OpenAI, Ollama, mock) debe implementar esta
// interfaz. Siguiendo el principio de inversión de dependencias (DIP), la capa
// de aplicación solo conoce este contrato, no la implementación concreta.
type LLMService interface {
	// GenerateSQL traduce una pregunta de negocio en lenguaje natural a un
	// SELECT sobre el esquema descrito en schemaDoc. El resultado vuelve sin
	// validar: el use case es quien garantiza que sea de solo lectura.
	// El contexto debe llevar un timeout para evitar bloqueos externos.
	GenerateSQL(ctx context.Context, schemaDoc, question string) (string, error)

	// SummarizeRows redacta una respuesta breve en el idioma de la pregunta a
	// partir de las filas obtenidas (serializadas como JSON).
	SummarizeRows(ctx context.Context, question, rowsJSON string) (string, error)
}
