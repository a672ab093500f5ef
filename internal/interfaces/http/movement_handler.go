package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/application/ledger"
)

// MovementHandler registro, cancelamento e listagem de movimentos (protegido).
type MovementHandler struct {
	apply  *ledger.ApplyMovementUseCase
	cancel *ledger.CancelMovementUseCase
	list   *ledger.ListMovementsUseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(
	apply *ledger.ApplyMovementUseCase,
	cancel *ledger.CancelMovementUseCase,
	list *ledger.ListMovementsUseCase,
) *MovementHandler {
	return &MovementHandler{apply: apply, cancel: cancel, list: list}
}

// Create godoc
// @Summary      Registrar movimento de estoque
// @Description  entrada soma, saida subtrai; a quantidade aceita número ou string ("12,5") e é sempre a magnitude.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "item_id, type (entrada|saida), quantity, notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	movement, err := h.apply.Apply(c.Context(), userID, ledger.ApplyMovementInput{
		ItemID:   in.ItemID,
		Type:     in.Type,
		Quantity: in.Quantity,
		Notes:    in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movement)
}

// List godoc
// @Summary      Listar movimentos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        date     query  string  false  "dia YYYY-MM-DD"
// @Param        sector   query  string  false  "bar | cozinha"
// @Param        user_id  query  string  false  "UUID do usuário"
// @Param        limit    query  int     false  "padrão 20, máx 100"
// @Param        offset   query  int     false  "padrão 0"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in := ledger.ListMovementsInput{
		Sector: c.Query("sector"),
		UserID: c.Query("user_id"),
	}
	if raw := c.Query("date"); raw != "" {
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date deve ser YYYY-MM-DD"})
		}
		in.Date = &day
	}
	if err := c.QueryParser(&in.Page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit/offset inválidos"})
	}
	movements, err := h.list.List(c.Context(), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(movements)
}

// Cancel godoc
// @Summary      Cancelar movimento
// @Description  Aplica o delta inverso e apaga o registro; falha se deixar o estoque negativo.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "UUID do movimento"
// @Success      200  {object}  dto.CancelMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.cancel.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
