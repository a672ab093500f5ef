package repository

import (
	"context"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// CategoryRepository define o porto de persistência para categorias.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context, sector string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
