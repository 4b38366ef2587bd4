package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
)

// AIHandler expone el chat en lenguaje natural y los hallazgos automáticos.
type AIHandler struct {
	chat     *usecase.AIUseCase
	insights *usecase.InsightsUseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(chat *usecase.AIUseCase, insights *usecase.InsightsUseCase) *AIHandler {
	return &AIHandler{chat: chat, insights: insights}
}

// Chat godoc
// @Summary      Pregunta en lenguaje natural sobre los datos del negocio
// @Description  Genera una consulta de solo lectura sobre los datos de la empresa y resume el resultado.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Pregunta"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.chat.Chat(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Insights godoc
// @Summary      Hallazgos automáticos: picos de demanda, compras conjuntas, proveedores inactivos
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InsightsResponse
// @Router       /api/ai/insights [get]
func (h *AIHandler) Insights(c *fiber.Ctx) error {
	out, err := h.insights.Insights(c.Context(), GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
