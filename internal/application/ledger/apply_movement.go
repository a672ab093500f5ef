// Package ledger (camada de aplicação) registra e cancela movimentos de
// estoque de forma transacional, com bloqueio de linha (SELECT FOR UPDATE) e
// Commit/Rollback, e reconcilia o cache de leitura após cada commit.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	domledger "github.com/vncerqueira/estoquebar-api/internal/domain/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// ApplyMovementUseCase registra entradas e saídas de estoque.
type ApplyMovementUseCase struct {
	txRunner TxRunner
	cache    *readmodel.ItemCache
	views    ViewInvalidator
}

// NewApplyMovementUseCase constrói o caso de uso.
func NewApplyMovementUseCase(txRunner TxRunner, cache *readmodel.ItemCache, views ViewInvalidator) *ApplyMovementUseCase {
	return &ApplyMovementUseCase{txRunner: txRunner, cache: cache, views: views}
}

// ApplyMovementInput entrada para registrar um movimento.
// Quantity aceita número ou string; o ledger normaliza antes de validar.
type ApplyMovementInput struct {
	ItemID   string
	Type     string // entrada | saida
	Quantity any
	Notes    string
}

// Apply valida, abre a transação, bloqueia a linha do item, aplica o delta e
// grava o movimento com snapshot do item. O movimento persiste só a magnitude
// (sempre positiva); a direção fica em Type. Após o commit, o item atualizado
// é aplicado otimisticamente ao cache e as agregações são invalidadas.
func (uc *ApplyMovementUseCase) Apply(ctx context.Context, userID string, in ApplyMovementInput) (*dto.MovementResponse, error) {
	if in.ItemID == "" || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.MovementTypeEntrada && in.Type != entity.MovementTypeSaida {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		updated  *entity.InventoryItem
		movement *entity.StockMovement
	)

	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		newQuantity, quantity, err := domledger.Apply(item.Quantity, in.Type, in.Quantity)
		if err != nil {
			return err
		}

		if err := itemRepo.UpdateQuantity(ctx, item.ID, newQuantity); err != nil {
			return err
		}

		movement = &entity.StockMovement{
			ID:        uuid.New().String(),
			ItemID:    item.ID,
			UserID:    userID,
			Type:      in.Type,
			Quantity:  quantity,
			ItemName:  item.Name,
			ItemUnit:  item.Unit,
			ItemPrice: item.Price,
			Sector:    item.Sector,
			Notes:     in.Notes,
			CreatedAt: now,
		}
		if err := movRepo.Create(ctx, movement); err != nil {
			return err
		}

		item.Quantity = newQuantity
		item.UpdatedAt = now
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.reconcile(ctx, updated)

	resp := dto.ToMovementResponse(movement)
	resp.NewQuantity = quantityPtr(updated.Quantity)
	return resp, nil
}

// reconcile aplica o patch otimista e invalida as visões derivadas.
func (uc *ApplyMovementUseCase) reconcile(ctx context.Context, item *entity.InventoryItem) {
	uc.cache.Upsert(item)
	uc.views.InvalidateDashboards(ctx)
}

func quantityPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
