package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/domain/repository"
)

const (
	// Un par de productos debe repetirse al menos este número de pedidos
	// para considerarse patrón de compra conjunta.
	coPurchaseMinOccurrences = 3
	// Proveedor inactivo: sin compras recibidas en los últimos 60 días.
	inactiveSupplierDays = 60
)

// InsightsUseCase corre las heurísticas proactivas del asistente: picos de
// demanda, productos que se venden juntos y proveedores inactivos. Son
// consultas SQL fijas, sin LLM de por medio.
type InsightsUseCase struct {
	analytics repository.AnalyticsRepository

	now func() time.Time
}

// NewInsightsUseCase construye el caso de uso.
func NewInsightsUseCase(analytics repository.AnalyticsRepository) *InsightsUseCase {
	return &InsightsUseCase{analytics: analytics, now: time.Now}
}

// Insights ejecuta las tres heurísticas en paralelo y agrega los hallazgos.
// Cero hallazgos no es un error: se responde con un mensaje informativo.
func (uc *InsightsUseCase) Insights(ctx context.Context, companyID string) (*dto.InsightsResponse, error) {
	now := uc.now()

	type spikesResult struct {
		rows []repository.DemandSpikeResult
		err  error
	}
	type pairsResult struct {
		rows []repository.CoPurchaseResult
		err  error
	}
	type suppliersResult struct {
		rows []repository.InactiveSupplierResult
		err  error
	}

	spikesChan := make(chan spikesResult, 1)
	pairsChan := make(chan pairsResult, 1)
	supChan := make(chan suppliersResult, 1)

	go func() {
		rows, err := uc.analytics.DemandSpikes(ctx, companyID, now)
		spikesChan <- spikesResult{rows, err}
	}()
	go func() {
		rows, err := uc.analytics.CoPurchasePairs(ctx, companyID, coPurchaseMinOccurrences)
		pairsChan <- pairsResult{rows, err}
	}()
	go func() {
		since := now.AddDate(0, 0, -inactiveSupplierDays)
		rows, err := uc.analytics.InactiveSuppliers(ctx, companyID, since)
		supChan <- suppliersResult{rows, err}
	}()

	spikes := <-spikesChan
	pairs := <-pairsChan
	sups := <-supChan

	if spikes.err != nil {
		return nil, fmt.Errorf("insights: demanda: %w", spikes.err)
	}
	if pairs.err != nil {
		return nil, fmt.Errorf("insights: pares: %w", pairs.err)
	}
	if sups.err != nil {
		return nil, fmt.Errorf("insights: proveedores: %w", sups.err)
	}

	var out []dto.InsightDTO
	for _, s := range spikes.rows {
		out = append(out, dto.InsightDTO{
			Kind:      "demand_spike",
			Title:     fmt.Sprintf("Pico de demanda: %s", s.Description),
			Detail:    fmt.Sprintf("%s vendió %d unidades en los últimos 30 días frente a %d en el período anterior. Considera reabastecer.", s.Description, s.RecentQty, s.PreviousQty),
			ProductID: s.ProductID,
		})
	}
	for _, p := range pairs.rows {
		out = append(out, dto.InsightDTO{
			Kind:   "co_purchase",
			Title:  fmt.Sprintf("Se venden juntos: %s + %s", p.ProductAName, p.ProductBName),
			Detail: fmt.Sprintf("%s y %s aparecieron juntos en %d pedidos. Un combo o exhibición conjunta puede subir el ticket.", p.ProductAName, p.ProductBName, p.Occurrences),
		})
	}
	for _, s := range sups.rows {
		detail := fmt.Sprintf("No hay compras recibidas de %s en los últimos %d días.", s.SupplierName, inactiveSupplierDays)
		if s.LastOrderDate == nil {
			detail = fmt.Sprintf("Nunca se ha registrado una compra recibida de %s.", s.SupplierName)
		}
		out = append(out, dto.InsightDTO{
			Kind:        "inactive_supplier",
			Title:       fmt.Sprintf("Proveedor inactivo: %s", s.SupplierName),
			Detail:      detail,
			SupplierID:  s.SupplierID,
			LastOrderAt: s.LastOrderDate,
		})
	}

	resp := &dto.InsightsResponse{Insights: out}
	if len(out) == 0 {
		resp.Message = "Sin hallazgos por ahora: no se detectaron picos de demanda, pares de compra ni proveedores inactivos."
	}
	return resp, nil
}
