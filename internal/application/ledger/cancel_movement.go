package ledger

import (
	"context"
	"time"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	domledger "github.com/vncerqueira/estoquebar-api/internal/domain/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// CancelMovementUseCase reverte um movimento aplicado e remove o registro.
// A verificação de quem pode cancelar é feita na borda HTTP (RBAC), não aqui.
type CancelMovementUseCase struct {
	txRunner TxRunner
	cache    *readmodel.ItemCache
	views    ViewInvalidator
}

// NewCancelMovementUseCase constrói o caso de uso.
func NewCancelMovementUseCase(txRunner TxRunner, cache *readmodel.ItemCache, views ViewInvalidator) *CancelMovementUseCase {
	return &CancelMovementUseCase{txRunner: txRunner, cache: cache, views: views}
}

// Cancel aplica o delta inverso do movimento (entrada subtrai, saída devolve)
// e apaga o registro, tudo na mesma transação. A reversão respeita a fronteira
// >= 0: se movimentos posteriores já consumiram o estoque, falha com
// ErrWouldGoNegative e nada é alterado. Movimentos de edição (auditoria) não
// são canceláveis.
func (uc *CancelMovementUseCase) Cancel(ctx context.Context, movementID string) (*dto.CancelMovementResponse, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		updated *entity.InventoryItem
		resp    *dto.CancelMovementResponse
	)

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		movement, err := movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if !movement.Reversible() {
			return domain.ErrInvalidInput
		}

		item, err := itemRepo.GetForUpdate(ctx, movement.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			// Item excluído por outro ator; o movimento já seria órfão
			return domain.ErrNotFound
		}

		newQuantity, err := domledger.Reverse(item.Quantity, movement.Type, movement.Quantity)
		if err != nil {
			return err
		}

		if err := itemRepo.UpdateQuantity(ctx, item.ID, newQuantity); err != nil {
			return err
		}
		if err := movRepo.Delete(ctx, movement.ID); err != nil {
			return err
		}

		item.Quantity = newQuantity
		item.UpdatedAt = now
		updated = item
		resp = &dto.CancelMovementResponse{
			MovementID:  movement.ID,
			ItemID:      item.ID,
			NewQuantity: newQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Upsert(updated)
	uc.views.InvalidateDashboards(ctx)
	return resp, nil
}
