package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/ports"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

// Esquema que se le describe al LLM para la traducción NL→SQL. Todas las
// tablas llevan company_id: el prompt obliga a filtrar por la empresa del
// usuario autenticado.
const schemaDoc = `Tablas disponibles (PostgreSQL):
- products(id, company_id, code, description, category, brand, price, stock, min_stock, max_stock, created_at)
- customers(id, company_id, name, tax_id, email, phone, address, city, latitude, longitude)
- suppliers(id, company_id, name, tax_id, email, phone, address, city)
- sales_orders(id, company_id, number, customer_id, customer_name, date, status, total_value)  -- status: 'Pendente','Faturado','Cancelado'
- sales_order_items(id, order_id, product_id, product_name, quantity, unit_price)
- purchase_orders(id, company_id, number, supplier_id, supplier_name, date, status, total_value)  -- status: 'Pendente','Recebido','Cancelado'
- purchase_order_items(id, order_id, product_id, product_name, quantity, unit_price)
Solo las ventas 'Faturado' y las compras 'Recebido' cuentan como cumplidas.`

const (
	aiTimeout = 10 * time.Second
	aiMaxRows = 20
)

// Guardas del SQL generado: una sola sentencia SELECT, sin DML/DDL y con
// LIMIT obligatorio. El LLM propone; estas reglas disponen.
var (
	selectOnlyRe  = regexp.MustCompile(`(?is)^\s*select\b`)
	forbiddenRe   = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|create|truncate|grant|revoke|copy|merge|call|execute|vacuum|set)\b`)
	hasLimitRe    = regexp.MustCompile(`(?i)\blimit\s+\d+`)
	trailingSemi  = regexp.MustCompile(`;\s*$`)
)

// AIUseCase orquesta el asistente conversacional sobre los datos del negocio:
// pregunta en lenguaje natural → SQL de solo lectura → respuesta redactada.
// Aplica un timeout de 10 segundos por llamada al LLM para evitar que las
// latencias externas bloqueen los goroutines del servidor.
type AIUseCase struct {
	llm       ports.LLMService
	analytics repository.AnalyticsRepository
}

// NewAIUseCase construye el caso de uso inyectando el puerto LLMService.
func NewAIUseCase(llm ports.LLMService, analytics repository.AnalyticsRepository) *AIUseCase {
	return &AIUseCase{llm: llm, analytics: analytics}
}

// Chat responde una pregunta de negocio. El SQL generado por el LLM pasa por
// SanitizeQuery antes de ejecutarse; un resultado vacío no es un error, se
// responde "sin datos" en texto.
func (uc *AIUseCase) Chat(ctx context.Context, companyID string, req dto.ChatRequest) (*dto.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, aiTimeout)
	defer cancel()

	prompt := fmt.Sprintf("%s\n\nFiltra SIEMPRE por company_id = '%s'.", schemaDoc, companyID)
	raw, err := uc.llm.GenerateSQL(ctx, prompt, req.Question)
	if err != nil {
		return nil, fmt.Errorf("asistente IA: %w", err)
	}

	query, err := SanitizeQuery(raw)
	if err != nil {
		return nil, err
	}

	rows, err := uc.analytics.RunReadOnlyQuery(ctx, query, aiMaxRows)
	if err != nil {
		return nil, fmt.Errorf("asistente IA: consulta: %w", err)
	}
	if len(rows) == 0 {
		return &dto.ChatResponse{
			Answer:   "No encontré datos para esa consulta en tu empresa.",
			Query:    query,
			RowCount: 0,
		}, nil
	}

	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("asistente IA: serializar filas: %w", err)
	}
	answer, err := uc.llm.SummarizeRows(ctx, req.Question, string(rowsJSON))
	if err != nil {
		return nil, fmt.Errorf("asistente IA: %w", err)
	}

	return &dto.ChatResponse{Answer: answer, Query: query, RowCount: len(rows)}, nil
}

// SanitizeQuery valida que el SQL generado sea una única sentencia SELECT de
// solo lectura y le impone LIMIT si el LLM no lo incluyó. Retorna
// ErrInvalidInput envuelto cuando la consulta no es admisible.
func SanitizeQuery(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	q = trailingSemi.ReplaceAllString(q, "")

	if q == "" || !selectOnlyRe.MatchString(q) {
		return "", fmt.Errorf("la consulta generada no es un SELECT: %w", domain.ErrInvalidInput)
	}
	// Un ';' interior implica más de una sentencia.
	if strings.Contains(q, ";") {
		return "", fmt.Errorf("la consulta generada tiene múltiples sentencias: %w", domain.ErrInvalidInput)
	}
	if forbiddenRe.MatchString(q) {
		return "", fmt.Errorf("la consulta generada contiene operaciones de escritura: %w", domain.ErrInvalidInput)
	}
	if !hasLimitRe.MatchString(q) {
		q = fmt.Sprintf("%s LIMIT %d", q, aiMaxRows)
	}
	return q, nil
}
