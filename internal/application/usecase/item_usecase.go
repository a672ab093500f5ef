package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/application/dto"
	appledger "github.com/vncerqueira/estoquebar-api/internal/application/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// ItemUseCase CRUD de itens de estoque. Edições diretas de quantidade passam
// pelo TxRunner para gravar a trilha de auditoria (movimento "edicao") junto
// com a atualização; listagens são servidas do cache local quando quente.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	txRunner appledger.TxRunner
	cache    *readmodel.ItemCache
	views    appledger.ViewInvalidator
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	itemRepo repository.ItemRepository,
	txRunner appledger.TxRunner,
	cache *readmodel.ItemCache,
	views appledger.ViewInvalidator,
) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, txRunner: txRunner, cache: cache, views: views}
}

// Create valida e persiste um item novo. A quantidade inicial é normalizada
// (número, string com vírgula ou nulo) e não pode ser negativa.
func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	item.ID = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.cache.Upsert(item)
	uc.views.InvalidateDashboards(ctx)
	return dto.ToItemResponse(item), nil
}

// List devolve os itens do setor (ou todos). Cache quente responde direto;
// frio busca no repositório e preenche.
func (uc *ItemUseCase) List(ctx context.Context, sector string) ([]*dto.ItemResponse, error) {
	if sector != "" && !entity.ValidSector(sector) {
		return nil, domain.ErrInvalidInput
	}
	if items, ok := uc.cache.Snapshot(sector); ok {
		return dto.ToItemResponses(items), nil
	}
	items, err := uc.itemRepo.List(ctx, sector)
	if err != nil {
		return nil, err
	}
	uc.cache.Fill(sector, items)
	return dto.ToItemResponses(items), nil
}

// Get devolve um item por ID.
func (uc *ItemUseCase) Get(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToItemResponse(item), nil
}

// Update substitui os campos do item. Quantity omitida (ou nula) no corpo
// preserva o estoque atual; quando informada e diferente, a diferença é
// auditada como movimento "edicao" (magnitude absoluta) na mesma transação —
// a quantidade continua mudando apenas com um registro no ledger.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	incoming, err := itemFromRequest(in)
	if err != nil {
		return nil, err
	}
	quantityProvided := in.Quantity != nil

	var updated *entity.InventoryItem
	err = uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		current, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		incoming.ID = current.ID
		incoming.CreatedAt = current.CreatedAt
		incoming.UpdatedAt = now
		if !quantityProvided {
			incoming.Quantity = current.Quantity
		}

		if err := itemRepo.Update(ctx, incoming); err != nil {
			return err
		}

		diff := incoming.Quantity.Sub(current.Quantity)
		if !diff.IsZero() {
			audit := &entity.StockMovement{
				ID:        uuid.New().String(),
				ItemID:    incoming.ID,
				UserID:    userID,
				Type:      entity.MovementTypeEdicao,
				Quantity:  diff.Abs(),
				ItemName:  incoming.Name,
				ItemUnit:  incoming.Unit,
				ItemPrice: incoming.Price,
				Sector:    incoming.Sector,
				Notes:     "ajuste manual de quantidade",
				CreatedAt: now,
			}
			if err := movRepo.Create(ctx, audit); err != nil {
				return err
			}
		}
		updated = incoming
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Upsert(updated)
	uc.views.InvalidateDashboards(ctx)
	return dto.ToItemResponse(updated), nil
}

// Delete remove o item (os movimentos caem em cascata no banco).
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := uc.itemRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Remove(id)
	uc.views.InvalidateDashboards(ctx)
	return nil
}

// itemFromRequest valida e normaliza o payload de criação/edição.
func itemFromRequest(in dto.ItemRequest) (*entity.InventoryItem, error) {
	if in.Name == "" || !entity.ValidSector(in.Sector) || !entity.ValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}

	quantity := ledger.NormalizeDefault(in.Quantity)
	if quantity.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	price := ledger.NormalizeDefault(in.Price)
	if price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var minQuantity *decimal.Decimal
	if in.MinQuantity != nil {
		mq := ledger.NormalizeDefault(in.MinQuantity)
		if mq.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		minQuantity = &mq
	}

	return &entity.InventoryItem{
		Name:        in.Name,
		Description: in.Description,
		Sector:      in.Sector,
		Unit:        in.Unit,
		Quantity:    quantity,
		MinQuantity: minQuantity,
		Price:       price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
	}, nil
}
