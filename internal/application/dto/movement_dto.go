package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// CreateMovementRequest body para POST /api/movements.
// Quantity aceita número ou string; a direção vem de Type (entrada|saida).
type CreateMovementRequest struct {
	ItemID   string `json:"item_id"`
	Type     string `json:"type"`
	Quantity any    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

// MovementResponse representação de um movimento nas respostas.
// NewQuantity só é preenchido na resposta do registro (estado do item após o commit).
type MovementResponse struct {
	ID          string           `json:"id"`
	ItemID      string           `json:"item_id"`
	UserID      string           `json:"user_id"`
	Type        string           `json:"type"`
	Quantity    decimal.Decimal  `json:"quantity"`
	ItemName    string           `json:"item_name"`
	ItemUnit    string           `json:"item_unit"`
	ItemPrice   decimal.Decimal  `json:"item_price"`
	Sector      string           `json:"sector"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	NewQuantity *decimal.Decimal `json:"new_quantity,omitempty"`
}

// CancelMovementResponse resposta de DELETE /api/movements/:id.
type CancelMovementResponse struct {
	MovementID  string          `json:"movement_id"`
	ItemID      string          `json:"item_id"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// ToMovementResponse converte a entidade para o DTO de resposta.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		UserID:    m.UserID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		ItemName:  m.ItemName,
		ItemUnit:  m.ItemUnit,
		ItemPrice: m.ItemPrice,
		Sector:    m.Sector,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
	}
}

// ToMovementResponses converte uma lista de entidades.
func ToMovementResponses(movements []*entity.StockMovement) []*MovementResponse {
	out := make([]*MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, ToMovementResponse(m))
	}
	return out
}
