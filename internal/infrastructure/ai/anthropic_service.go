package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gestorpyme/gestor-api/internal/application/ports"
	"github.com/gestorpyme/gestor-api/internal/domain"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	sqlSystemPrompt = `Eres un generador de consultas SQL para PostgreSQL.
Recibes la descripción de un esquema y una pregunta de negocio en lenguaje natural.
Devuelve ÚNICAMENTE una consulta SELECT válida (sin markdown, sin bloques de código, sin explicaciones).

Reglas:
- Una sola sentencia SELECT de solo lectura. Jamás INSERT, UPDATE, DELETE, DDL ni ';'.
- Filtra SIEMPRE por la columna company_id con el valor indicado en el esquema.
- Incluye LIMIT 20 al final.
- Usa nombres de columna en el SELECT que un usuario no técnico entienda (alias en español si aplica).
- Si la pregunta no puede responderse con el esquema, responde exactamente: SELECT NULL WHERE FALSE LIMIT 1`

	summarySystemPrompt = `Eres el asistente de un sistema de gestión para pymes.
Recibes la pregunta original del usuario y las filas de datos que la responden (JSON).
Redacta una respuesta breve y clara en el idioma de la pregunta, citando las cifras relevantes.
No inventes datos que no estén en las filas. No menciones SQL ni el formato JSON. Máximo 3 frases.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST de Anthropic (Claude).
// Usa net/http de la librería estándar de Go; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	return &AnthropicService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
			Timeout: 25 * time.Second,
		},
	}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// codeFenceRe quita bloques de markdown si Claude envuelve el SQL en ```sql ... ```.
var codeFenceRe = regexp.MustCompile("(?s)```(?:sql)?\\s*(.*?)\\s*```")

// ── Implementación del puerto ─────────────────────────────────────────────────

// GenerateSQL traduce la pregunta a un SELECT sobre el esquema descrito.
// El resultado vuelve sin validar: la guarda de solo lectura vive en el use case.
func (s *AnthropicService) GenerateSQL(ctx context.Context, schemaDoc, question string) (string, error) {
	userContent := fmt.Sprintf("Esquema:\n%s\n\nPregunta: %s", schemaDoc, question)
	text, err := s.complete(ctx, sqlSystemPrompt, userContent)
	if err != nil {
		return "", err
	}
	// Claude a veces envuelve el SQL en un bloque de código pese al prompt.
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	return strings.TrimSpace(text), nil
}

// SummarizeRows redacta la respuesta final a partir de las filas obtenidas.
func (s *AnthropicService) SummarizeRows(ctx context.Context, question, rowsJSON string) (string, error) {
	userContent := fmt.Sprintf("Pregunta: %s\n\nFilas (JSON):\n%s", question, rowsJSON)
	text, err := s.complete(ctx, summarySystemPrompt, userContent)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// complete ejecuta una llamada al Messages API y devuelve el texto del primer
// bloque de contenido.
func (s *AnthropicService) complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado: %w", domain.ErrAIUnavailable)
	}

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    systemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicMessagesURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	// Manejar errores HTTP de la API de Anthropic
	if resp.StatusCode != http.StatusOK {
		var errResp anthropicResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Anthropic error (%s): %s", errResp.Error.Type, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(rawBody, &parsed); err != nil {
		return "", fmt.Errorf("AI: parsear respuesta: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("AI: respuesta sin contenido")
	}
	return parsed.Content[0].Text, nil
}
