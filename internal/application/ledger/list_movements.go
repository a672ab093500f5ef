package ledger

import (
	"context"
	"time"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// ListMovementsUseCase consulta do ledger (somente leitura, fora de transação).
type ListMovementsUseCase struct {
	movRepo repository.MovementRepository
}

// NewListMovementsUseCase constrói o caso de uso.
func NewListMovementsUseCase(movRepo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// ListMovementsInput filtros opcionais de GET /api/movements.
type ListMovementsInput struct {
	Date   *time.Time // dia (00:00–23:59)
	Sector string
	UserID string
	Page   dto.PageRequest
}

// List devolve os movimentos filtrados, mais recentes primeiro.
func (uc *ListMovementsUseCase) List(ctx context.Context, in ListMovementsInput) ([]*dto.MovementResponse, error) {
	in.Page.DefaultPage()
	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		Date:   in.Date,
		Sector: in.Sector,
		UserID: in.UserID,
		Limit:  in.Page.Limit,
		Offset: in.Page.Offset,
	})
	if err != nil {
		return nil, err
	}
	return dto.ToMovementResponses(movements), nil
}
