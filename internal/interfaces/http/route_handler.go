package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorpyme/gestor-api/internal/application/dto"
	"github.com/gestorpyme/gestor-api/internal/application/usecase"
)

// RouteHandler planifica rutas de reparto sobre los clientes con coordenadas.
type RouteHandler struct {
	uc *usecase.RouteUseCase
}

// NewRouteHandler construye el handler.
func NewRouteHandler(uc *usecase.RouteUseCase) *RouteHandler {
	return &RouteHandler{uc: uc}
}

// Plan godoc
// @Summary      Planificar ruta de reparto (vecino más cercano desde el origen)
// @Description  Los clientes sin coordenadas o inexistentes se omiten y se listan en skipped.
// @Tags         routes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RoutePlanRequest  true  "Origen y clientes a visitar"
// @Success      200   {object}  dto.RoutePlanResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/routes/plan [post]
func (h *RouteHandler) Plan(c *fiber.Ctx) error {
	var in dto.RoutePlanRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	out, err := h.uc.Plan(GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
