package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// ItemRequest body para POST/PUT /api/items.
// Quantity, MinQuantity e Price aceitam número ou string ("12,5" inclusive);
// a normalização numérica é feita pelo ledger antes de qualquer cálculo.
// Na criação, Quantity omitida vale 0. Na atualização, Quantity omitida (ou
// nula) preserva o estoque atual — só um valor explícito dispara o ajuste
// auditado ("edicao"); os demais campos são substituição completa.
type ItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Sector      string `json:"sector"`
	Unit        string `json:"unit"`
	Quantity    any    `json:"quantity,omitempty"`
	MinQuantity any    `json:"min_quantity,omitempty"`
	Price       any    `json:"price,omitempty"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// ItemResponse representação de um item nas respostas.
type ItemResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Sector       string           `json:"sector"`
	Unit         string           `json:"unit"`
	Quantity     decimal.Decimal  `json:"quantity"`
	MinQuantity  *decimal.Decimal `json:"min_quantity,omitempty"`
	Price        decimal.Decimal  `json:"price"`
	Category     string           `json:"category,omitempty"`
	ImageURL     string           `json:"image_url,omitempty"`
	BelowMinimum bool             `json:"below_minimum"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ToItemResponse converte a entidade para o DTO de resposta.
func ToItemResponse(i *entity.InventoryItem) *ItemResponse {
	if i == nil {
		return nil
	}
	return &ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		Description:  i.Description,
		Sector:       i.Sector,
		Unit:         i.Unit,
		Quantity:     i.Quantity,
		MinQuantity:  i.MinQuantity,
		Price:        i.Price,
		Category:     i.Category,
		ImageURL:     i.ImageURL,
		BelowMinimum: i.BelowMinimum(),
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// ToItemResponses converte uma lista de entidades.
func ToItemResponses(items []*entity.InventoryItem) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
