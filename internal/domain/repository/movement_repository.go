package repository

import (
	"context"
	"time"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// MovementFilter filtros opcionais para listagem de movimentos.
// Date filtra pelo dia (00:00–23:59 no fuso do servidor); campos vazios não filtram.
type MovementFilter struct {
	Date   *time.Time
	Sector string
	UserID string
	Limit  int
	Offset int
}

// MovementRepository define o porto de persistência para movimentos de estoque.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// Delete remove definitivamente o registro (cancelamento; não há soft delete).
	Delete(ctx context.Context, id string) error
}
