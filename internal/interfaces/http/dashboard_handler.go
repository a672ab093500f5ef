package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vncerqueira/estoquebar-api/internal/application/report"
)

// DashboardHandler agregações do dashboard (protegido, admin/dono).
type DashboardHandler struct {
	uc *report.DashboardUseCase
}

// NewDashboardHandler constrói o handler.
func NewDashboardHandler(uc *report.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumo do dashboard
// @Description  KPIs do dia, série dos últimos 7 dias, ranking de funcionários e alertas de estoque baixo.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(summary)
}

// LowStock godoc
// @Summary      Itens com estoque baixo
// @Description  Itens com quantity <= min_quantity (alerta inclusivo), opcionalmente por setor.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        sector  query  string  false  "bar | cozinha (vazio = todos)"
// @Success      200  {array}   dto.ItemResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/low-stock [get]
func (h *DashboardHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.LowStock(c.Context(), c.Query("sector"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(items)
}
