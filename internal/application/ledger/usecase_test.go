package ledger_test

import (
	"context"
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/vncerqueira/estoquebar-api/internal/application/ledger"
	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória para os portos de persistência
// ──────────────────────────────────────────────────────────────────────────────

type fakeItemRepo struct {
	items map[string]*entity.InventoryItem
}

func newFakeItemRepo(items ...*entity.InventoryItem) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.InventoryItem)}
	for _, it := range items {
		cp := *it
		r.items[it.ID] = &cp
	}
	return r
}

func (r *fakeItemRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id string) (*entity.InventoryItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryItem, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeItemRepo) List(_ context.Context, sector string) ([]*entity.InventoryItem, error) {
	var out []*entity.InventoryItem
	for _, it := range r.items {
		if sector == "" || it.Sector == sector {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *entity.InventoryItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	it, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Quantity = quantity
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id string) error {
	delete(r.items, id)
	return nil
}

type fakeMovementRepo struct {
	movements map[string]*entity.StockMovement
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{movements: make(map[string]*entity.StockMovement)}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMovementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.movements {
		if f.UserID != "" && m.UserID != f.UserID {
			continue
		}
		if f.Sector != "" && m.Sector != f.Sector {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	return out, nil
}

func (r *fakeMovementRepo) Delete(_ context.Context, id string) error {
	delete(r.movements, id)
	return nil
}

// fakeTxRunner executa o callback direto sobre os fakes (sem transação real);
// os casos de uso só observam os portos, então a semântica é a mesma.
type fakeTxRunner struct {
	items *fakeItemRepo
	movs  *fakeMovementRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	return fn(r.items, r.movs)
}

type fakeViews struct {
	invalidations int
}

func (v *fakeViews) InvalidateDashboards(context.Context) { v.invalidations++ }

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	items  *fakeItemRepo
	movs   *fakeMovementRepo
	cache  *readmodel.ItemCache
	views  *fakeViews
	apply  *appledger.ApplyMovementUseCase
	cancel *appledger.CancelMovementUseCase
}

func newFixture(items ...*entity.InventoryItem) *fixture {
	itemRepo := newFakeItemRepo(items...)
	movRepo := newFakeMovementRepo()
	tx := &fakeTxRunner{items: itemRepo, movs: movRepo}
	cache := readmodel.NewItemCache()
	views := &fakeViews{}
	return &fixture{
		items:  itemRepo,
		movs:   movRepo,
		cache:  cache,
		views:  views,
		apply:  appledger.NewApplyMovementUseCase(tx, cache, views),
		cancel: appledger.NewCancelMovementUseCase(tx, cache, views),
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func barItem(qty string) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:       "item-1",
		Name:     "Vodka",
		Sector:   entity.SectorBar,
		Unit:     entity.UnitKg,
		Quantity: dec(qty),
		Price:    dec("45.90"),
	}
}

func (f *fixture) storedQuantity(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	it, err := f.items.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de movimentos
// ──────────────────────────────────────────────────────────────────────────────

// Item com 10 kg: entrada de 5 → 15, movimento {entrada, 5} gravado com snapshot.
func TestApply_EntradaRegistraMovimento(t *testing.T) {
	f := newFixture(barItem("10"))
	// Simula uma listagem anterior: o setor já está carregado no cache local
	f.cache.Fill(entity.SectorBar, []*entity.InventoryItem{barItem("10")})

	resp, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeEntrada,
		Quantity: 5,
		Notes:    "reposição semanal",
	})
	require.NoError(t, err)

	assert.True(t, dec("15").Equal(f.storedQuantity(t, "item-1")))
	require.NotNil(t, resp.NewQuantity)
	assert.True(t, dec("15").Equal(*resp.NewQuantity))
	assert.Equal(t, entity.MovementTypeEntrada, resp.Type)
	assert.True(t, dec("5").Equal(resp.Quantity))
	assert.Equal(t, "Vodka", resp.ItemName, "o movimento carrega snapshot do item")
	assert.Equal(t, entity.UnitKg, resp.ItemUnit)
	assert.Equal(t, "user-1", resp.UserID)
	assert.Equal(t, 1, f.views.invalidations, "toda escrita invalida as visões derivadas")

	// Patch otimista: o item atualizado já está no cache
	got, ok := f.cache.Snapshot(entity.SectorBar)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, dec("15").Equal(got[0].Quantity))
}

// Item com 10: saída de 15 → InsufficientStock, quantidade inalterada, sem movimento.
func TestApply_SaidaInsuficienteNaoEscreveNada(t *testing.T) {
	f := newFixture(barItem("10"))

	_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeSaida,
		Quantity: 15,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("10").Equal(f.storedQuantity(t, "item-1")))
	assert.Empty(t, f.movs.movements, "falha antes de qualquer escrita")
	assert.Zero(t, f.views.invalidations)
}

// Item com 10: saída de 10 → sucesso, quantidade 0 (fronteira >= 0).
func TestApply_SaidaExataZera(t *testing.T) {
	f := newFixture(barItem("10"))

	resp, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeSaida,
		Quantity: "10",
	})
	require.NoError(t, err)
	assert.True(t, f.storedQuantity(t, "item-1").IsZero())
	assert.True(t, dec("10").Equal(resp.Quantity))
}

func TestApply_QuantidadeInvalidaRejeitada(t *testing.T) {
	f := newFixture(barItem("10"))

	for _, raw := range []any{0, -1, "abc", nil} {
		_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
			ItemID:   "item-1",
			Type:     entity.MovementTypeEntrada,
			Quantity: raw,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "quantidade %v", raw)
	}
	assert.Empty(t, f.movs.movements)
}

func TestApply_TipoEdicaoNaoAceitoNoEndpoint(t *testing.T) {
	f := newFixture(barItem("10"))

	_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeEdicao,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ItemInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "nao-existe",
		Type:     entity.MovementTypeEntrada,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Magnitude sempre positiva: a direção fica exclusivamente em Type.
func TestApply_MagnitudePersistidaSemprePositiva(t *testing.T) {
	f := newFixture(barItem("50"))

	for _, movType := range []string{entity.MovementTypeEntrada, entity.MovementTypeSaida} {
		_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
			ItemID:   "item-1",
			Type:     movType,
			Quantity: "7,5",
		})
		require.NoError(t, err)
	}
	for _, m := range f.movs.movements {
		assert.True(t, m.Quantity.GreaterThan(decimal.Zero),
			"movimento %s deve guardar magnitude > 0", m.Type)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento
// ──────────────────────────────────────────────────────────────────────────────

// Estoque 0 após saída de 10: cancelar a saída devolve 10 e apaga o registro.
func TestCancel_SaidaDevolveEstoqueEApagaRegistro(t *testing.T) {
	f := newFixture(barItem("10"))

	applied, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeSaida,
		Quantity: 10,
	})
	require.NoError(t, err)
	require.True(t, f.storedQuantity(t, "item-1").IsZero())

	resp, err := f.cancel.Cancel(context.Background(), applied.ID)
	require.NoError(t, err)

	assert.True(t, dec("10").Equal(resp.NewQuantity))
	assert.True(t, dec("10").Equal(f.storedQuantity(t, "item-1")))
	assert.Empty(t, f.movs.movements, "cancelar destrói o registro, não é soft delete")
}

// Aplicar e cancelar em seguida restaura a quantidade original (lei inversa).
func TestCancel_LeiInversaAposApply(t *testing.T) {
	for _, movType := range []string{entity.MovementTypeEntrada, entity.MovementTypeSaida} {
		f := newFixture(barItem("37.5"))

		applied, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
			ItemID:   "item-1",
			Type:     movType,
			Quantity: "7,25",
		})
		require.NoError(t, err)

		_, err = f.cancel.Cancel(context.Background(), applied.ID)
		require.NoError(t, err)
		assert.True(t, dec("37.5").Equal(f.storedQuantity(t, "item-1")),
			"apply+cancel de %s deve restaurar a quantidade", movType)
	}
}

// Cancelar uma entrada cujo estoque já foi consumido por movimentos
// posteriores deixaria o saldo negativo: rejeita sem alterar nada.
func TestCancel_EntradaJaConsumidaFalha(t *testing.T) {
	f := newFixture(barItem("0"))

	entrada, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeEntrada,
		Quantity: 5,
	})
	require.NoError(t, err)

	// Outro movimento consome 3 do estoque
	_, err = f.apply.Apply(context.Background(), "user-2", appledger.ApplyMovementInput{
		ItemID:   "item-1",
		Type:     entity.MovementTypeSaida,
		Quantity: 3,
	})
	require.NoError(t, err)

	_, err = f.cancel.Cancel(context.Background(), entrada.ID)
	assert.ErrorIs(t, err, domain.ErrWouldGoNegative)
	assert.True(t, dec("2").Equal(f.storedQuantity(t, "item-1")), "falha não altera o estoque")
	assert.Len(t, f.movs.movements, 2, "o registro original permanece")
}

func TestCancel_MovimentoInexistente(t *testing.T) {
	f := newFixture(barItem("10"))

	_, err := f.cancel.Cancel(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_MovimentoDeEdicaoNaoCancelavel(t *testing.T) {
	f := newFixture(barItem("10"))

	audit := &entity.StockMovement{
		ID:       "mov-edicao",
		ItemID:   "item-1",
		UserID:   "user-1",
		Type:     entity.MovementTypeEdicao,
		Quantity: dec("2"),
	}
	require.NoError(t, f.movs.Create(context.Background(), audit))

	_, err := f.cancel.Cancel(context.Background(), "mov-edicao")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida sequencializada (duas saídas concorrentes)
// ──────────────────────────────────────────────────────────────────────────────

// Item com 3: saídas de 5 e de 2 disputando. Com a transação e o bloqueio de
// linha, a segunda escrita sempre observa a quantidade já confirmada pela
// primeira: read-modify-write serializado, sem lost update.
func TestApply_SaidasConcorrentesSerializadas(t *testing.T) {
	// Ordem A: a saída de 5 chega primeiro e é rejeitada; a de 2 passa.
	f := newFixture(barItem("3"))

	_, err := f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID: "item-1", Type: entity.MovementTypeSaida, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = f.apply.Apply(context.Background(), "user-2", appledger.ApplyMovementInput{
		ItemID: "item-1", Type: entity.MovementTypeSaida, Quantity: 2,
	})
	require.NoError(t, err)
	assert.True(t, dec("1").Equal(f.storedQuantity(t, "item-1")))

	// Ordem B: a saída de 2 confirma primeiro; a de 5 é avaliada contra 1 e falha.
	f = newFixture(barItem("3"))

	_, err = f.apply.Apply(context.Background(), "user-2", appledger.ApplyMovementInput{
		ItemID: "item-1", Type: entity.MovementTypeSaida, Quantity: 2,
	})
	require.NoError(t, err)

	_, err = f.apply.Apply(context.Background(), "user-1", appledger.ApplyMovementInput{
		ItemID: "item-1", Type: entity.MovementTypeSaida, Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"a segunda saída observa a quantidade já confirmada (1), não a inicial (3)")
	assert.True(t, dec("1").Equal(f.storedQuantity(t, "item-1")))
}
