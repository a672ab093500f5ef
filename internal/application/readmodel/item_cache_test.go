package readmodel_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncerqueira/estoquebar-api/internal/application/readmodel"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

func item(id, name, sector string, qty int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:       id,
		Name:     name,
		Sector:   sector,
		Unit:     entity.UnitUnidade,
		Quantity: decimal.NewFromInt(qty),
	}
}

func TestItemCache_FrioAteFill(t *testing.T) {
	c := readmodel.NewItemCache()

	_, ok := c.Snapshot(entity.SectorBar)
	assert.False(t, ok, "cache frio deve exigir busca no repositório")

	c.Fill(entity.SectorBar, []*entity.InventoryItem{
		item("1", "Vodka", entity.SectorBar, 10),
		item("2", "Gin", entity.SectorBar, 4),
	})

	got, ok := c.Snapshot(entity.SectorBar)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "Gin", got[0].Name, "snapshot ordenado por nome")

	// Setor não carregado continua frio
	_, ok = c.Snapshot(entity.SectorCozinha)
	assert.False(t, ok)
}

func TestItemCache_UpsertOtimista(t *testing.T) {
	c := readmodel.NewItemCache()
	c.Fill(entity.SectorBar, []*entity.InventoryItem{item("1", "Vodka", entity.SectorBar, 10)})

	// Movimento confirmado: patch com o registro devolvido pela escrita
	updated := item("1", "Vodka", entity.SectorBar, 15)
	c.Upsert(updated)

	got, ok := c.Snapshot(entity.SectorBar)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.True(t, decimal.NewFromInt(15).Equal(got[0].Quantity))

	// Item novo aparece sem novo Fill
	c.Upsert(item("2", "Cachaça", entity.SectorBar, 3))
	got, _ = c.Snapshot(entity.SectorBar)
	assert.Len(t, got, 2)
}

func TestItemCache_SnapshotDevolveCopias(t *testing.T) {
	c := readmodel.NewItemCache()
	c.Fill("", []*entity.InventoryItem{item("1", "Vodka", entity.SectorBar, 10)})

	got, _ := c.Snapshot("")
	got[0].Quantity = decimal.NewFromInt(999)

	again, _ := c.Snapshot("")
	assert.True(t, decimal.NewFromInt(10).Equal(again[0].Quantity),
		"mutação do snapshot não pode vazar para o cache")
}

func TestItemCache_RemoveEInvalidate(t *testing.T) {
	c := readmodel.NewItemCache()
	c.Fill(entity.SectorBar, []*entity.InventoryItem{
		item("1", "Vodka", entity.SectorBar, 10),
		item("2", "Gin", entity.SectorBar, 4),
	})

	c.Remove("1")
	got, ok := c.Snapshot(entity.SectorBar)
	require.True(t, ok)
	assert.Len(t, got, 1)

	c.Invalidate()
	_, ok = c.Snapshot(entity.SectorBar)
	assert.False(t, ok, "após Invalidate o próximo leitor deve refazer a busca")
}

func TestItemCache_FillGeralCobreSetores(t *testing.T) {
	c := readmodel.NewItemCache()
	c.Fill("", []*entity.InventoryItem{
		item("1", "Vodka", entity.SectorBar, 10),
		item("2", "Arroz", entity.SectorCozinha, 8),
	})

	bar, ok := c.Snapshot(entity.SectorBar)
	require.True(t, ok, "carga geral atende consultas por setor")
	assert.Len(t, bar, 1)

	all, ok := c.Snapshot("")
	require.True(t, ok)
	assert.Len(t, all, 2)
}
