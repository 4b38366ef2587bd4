package alert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestorpyme/gestor-api/internal/domain/alert"
	"github.com/gestorpyme/gestor-api/internal/domain/entity"
)

func TestEvaluate_StockBajoYCritico(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Code: "A-1", Stock: 0, MinStock: 5},  // crítica
		{ID: "p2", Code: "A-2", Stock: 5, MinStock: 5},  // baja (igual al mínimo cuenta)
		{ID: "p3", Code: "A-3", Stock: 50, MinStock: 5}, // sin alerta
	}

	alerts := alert.Evaluate(products)
	require.Len(t, alerts, 2)

	assert.Equal(t, alert.KindLowStock, alerts[0].Kind)
	assert.Equal(t, alert.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, "p1", alerts[0].ProductID)

	assert.Equal(t, alert.SeverityLow, alerts[1].Severity)
	assert.Equal(t, "p2", alerts[1].ProductID)
}

func TestEvaluate_Sobrestock(t *testing.T) {
	products := []*entity.Product{
		{ID: "p1", Stock: 120, MinStock: 5, MaxStock: 100},
		{ID: "p2", Stock: 120, MinStock: 5, MaxStock: 0}, // sin máximo definido: no alerta
	}
	alerts := alert.Evaluate(products)
	require.Len(t, alerts, 1)
	assert.Equal(t, alert.KindOverstock, alerts[0].Kind)
	assert.Equal(t, "p1", alerts[0].ProductID)
}

func TestEvaluate_SinProductos(t *testing.T) {
	assert.Empty(t, alert.Evaluate(nil))
}
