package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorias (metadado de exibição, sem efeito no estoque).
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryUseCase constrói o caso de uso.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo}
}

// CategoryInput payload de criação/edição.
type CategoryInput struct {
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	Icon      string `json:"icon,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// Create valida e persiste uma categoria.
func (uc *CategoryUseCase) Create(ctx context.Context, in CategoryInput) (*entity.Category, error) {
	if in.Name == "" || !entity.ValidSector(in.Sector) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Sector:    in.Sector,
		Icon:      in.Icon,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// List devolve as categorias, opcionalmente por setor, na ordem de exibição.
func (uc *CategoryUseCase) List(ctx context.Context, sector string) ([]*entity.Category, error) {
	if sector != "" && !entity.ValidSector(sector) {
		return nil, domain.ErrInvalidInput
	}
	return uc.categoryRepo.List(ctx, sector)
}

// Update substitui os campos editáveis.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in CategoryInput) (*entity.Category, error) {
	if in.Name == "" || !entity.ValidSector(in.Sector) {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	category.Name = in.Name
	category.Sector = in.Sector
	category.Icon = in.Icon
	category.SortOrder = in.SortOrder
	category.UpdatedAt = time.Now()
	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete remove a categoria. Itens que a referenciam mantêm o nome livre.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(ctx, id)
}
