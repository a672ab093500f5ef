package repository

import (
	"context"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// UserRepository define o porto de persistência para usuários.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	CountAll(ctx context.Context) (int, error)
}
