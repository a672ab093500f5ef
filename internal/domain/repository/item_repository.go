package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// ItemRepository define o porto de persistência para itens de estoque.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.InventoryItem) error
	GetByID(ctx context.Context, id string) (*entity.InventoryItem, error)
	// GetForUpdate bloqueia a linha do item para update (SELECT FOR UPDATE).
	// Usado dentro de transações pelo ledger.
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error)
	// List devolve todos os itens, opcionalmente filtrados por setor, ordenados por nome.
	List(ctx context.Context, sector string) ([]*entity.InventoryItem, error)
	Update(ctx context.Context, item *entity.InventoryItem) error
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	// Delete remove o item e, em cascata, seus movimentos.
	Delete(ctx context.Context, id string) error
}
