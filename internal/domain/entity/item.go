package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Setores do estoque.
const (
	SectorBar     = "bar"
	SectorCozinha = "cozinha"
)

// Unidades de medida aceitas.
const (
	UnitUnidade = "unidade"
	UnitKg      = "kg"
	UnitLitro   = "litro"
	UnitCaixa   = "caixa"
	UnitPacote  = "pacote"
)

// ValidSector informa se o setor é conhecido.
func ValidSector(s string) bool {
	return s == SectorBar || s == SectorCozinha
}

// ValidUnit informa se a unidade de medida é conhecida.
func ValidUnit(u string) bool {
	switch u {
	case UnitUnidade, UnitKg, UnitLitro, UnitCaixa, UnitPacote:
		return true
	}
	return false
}

// InventoryItem representa um produto estocado (bar ou cozinha).
// Quantity só muda através do ledger de movimentos; nunca fica negativa após commit.
type InventoryItem struct {
	ID          string
	Name        string
	Description string // vazio se não informado
	Sector      string // bar, cozinha
	Unit        string // unidade, kg, litro, caixa, pacote
	Quantity    decimal.Decimal
	MinQuantity *decimal.Decimal // limiar de alerta; nil desativa o alerta
	Price       decimal.Decimal  // preço unitário, moeda corrente
	Category    string           // nome livre de categoria, vazio se não informado
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMinimum informa se o item está no limiar de alerta de estoque baixo
// (quantity <= min_quantity; regra única, inclusive).
func (i *InventoryItem) BelowMinimum() bool {
	if i.MinQuantity == nil {
		return false
	}
	return i.Quantity.LessThanOrEqual(*i.MinQuantity)
}
