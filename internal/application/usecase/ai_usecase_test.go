package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
	"github.com/gestorpyme/gestor-api/internal/domain"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// SanitizeQuery: la guarda de solo lectura del SQL generado por el LLM
// ──────────────────────────────────────────────────────────────────────────────

func TestSanitizeQuery_AgregaLimitSiFalta(t *testing.T) {
	q, err := usecase.SanitizeQuery("SELECT code, stock FROM products WHERE company_id = 'x'")
	require.NoError(t, err)
	assert.Equal(t, "SELECT code, stock FROM products WHERE company_id = 'x' LIMIT 20", q)
}

func TestSanitizeQuery_RespetaLimitExistente(t *testing.T) {
	q, err := usecase.SanitizeQuery("select * from products limit 5;")
	require.NoError(t, err)
	assert.Equal(t, "select * from products limit 5", q, "quita el ';' final y no duplica el LIMIT")
}

func TestSanitizeQuery_RechazaEscritura(t *testing.T) {
	cases := []string{
		"DELETE FROM products",
		"UPDATE products SET stock = 0",
		"INSERT INTO products VALUES (1)",
		"DROP TABLE products",
		"SELECT 1; DELETE FROM products", // segunda sentencia
		"SELECT * INTO backup FROM products; TRUNCATE products",
		"",
		"EXPLAIN SELECT 1",
	}
	for _, raw := range cases {
		_, err := usecase.SanitizeQuery(raw)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "debe rechazarse: %q", raw)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat: orquestación LLM → guarda → consulta → resumen
// ──────────────────────────────────────────────────────────────────────────────

type fakeLLM struct {
	sql        string
	summary    string
	lastSchema string
}

func (f *fakeLLM) GenerateSQL(ctx context.Context, schemaDoc, question string) (string, error) {
	f.lastSchema = schemaDoc
	return f.sql, nil
}

func (f *fakeLLM) SummarizeRows(ctx context.Context, question, rowsJSON string) (string, error) {
	return f.summary, nil
}

type fakeAnalytics struct {
	rows      []map[string]any
	lastQuery string
}

func (f *fakeAnalytics) RunReadOnlyQuery(ctx context.Context, query string, maxRows int) ([]map[string]any, error) {
	f.lastQuery = query
	if len(f.rows) > maxRows {
		return f.rows[:maxRows], nil
	}
	return f.rows, nil
}

func (f *fakeAnalytics) DemandSpikes(ctx context.Context, companyID string, now time.Time) ([]repository.DemandSpikeResult, error) {
	return nil, nil
}

func (f *fakeAnalytics) CoPurchasePairs(ctx context.Context, companyID string, minOccurrences int) ([]repository.CoPurchaseResult, error) {
	return nil, nil
}

func (f *fakeAnalytics) InactiveSuppliers(ctx context.Context, companyID string, since time.Time) ([]repository.InactiveSupplierResult, error) {
	return nil, nil
}

func TestChat_FlujoCompleto(t *testing.T) {
	llm := &fakeLLM{
		sql:     "SELECT description, stock FROM products WHERE company_id = 'emp-1' ORDER BY stock DESC",
		summary: "El producto con más stock es Café tostado (120 unidades).",
	}
	analytics := &fakeAnalytics{rows: []map[string]any{
		{"description": "Café tostado", "stock": int64(120)},
	}}
	uc := usecase.NewAIUseCase(llm, analytics)

	resp, err := uc.Chat(context.Background(), "emp-1", dto.ChatRequest{Question: "¿cuál es el producto con más stock?"})
	require.NoError(t, err)

	assert.Equal(t, llm.summary, resp.Answer)
	assert.Equal(t, 1, resp.RowCount)
	assert.Contains(t, analytics.lastQuery, "LIMIT 20", "la guarda impone el límite de filas")
	assert.Contains(t, llm.lastSchema, "company_id = 'emp-1'", "el prompt obliga el filtro por empresa")
}

func TestChat_SinDatosNoEsError(t *testing.T) {
	llm := &fakeLLM{sql: "SELECT * FROM products WHERE company_id = 'emp-1' AND stock < 0"}
	uc := usecase.NewAIUseCase(llm, &fakeAnalytics{})

	resp, err := uc.Chat(context.Background(), "emp-1", dto.ChatRequest{Question: "¿hay stock negativo?"})
	require.NoError(t, err)
	assert.Zero(t, resp.RowCount)
	assert.NotEmpty(t, resp.Answer, "responde en texto que no hay datos")
}

func TestChat_SQLPeligrosoSeBloquea(t *testing.T) {
	llm := &fakeLLM{sql: "DROP TABLE products"}
	analytics := &fakeAnalytics{}
	uc := usecase.NewAIUseCase(llm, analytics)

	_, err := uc.Chat(context.Background(), "emp-1", dto.ChatRequest{Question: "borra todo"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, analytics.lastQuery, "la consulta jamás llega a la base de datos")
}
