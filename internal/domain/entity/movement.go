package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimento de estoque.
const (
	MovementTypeEntrada = "entrada" // recebimento de mercadoria
	MovementTypeSaida   = "saida"   // consumo/venda
	MovementTypeEdicao  = "edicao"  // trilha de auditoria de edições diretas do item
)

// ValidMovementType informa se o tipo é conhecido.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida || t == MovementTypeEdicao
}

// Reversible informa se o movimento pode ser cancelado (revertido e apagado).
// Registros de edição são só auditoria; não representam fluxo reversível de estoque.
func (m *StockMovement) Reversible() bool {
	return m.Type == MovementTypeEntrada || m.Type == MovementTypeSaida
}

// StockMovement representa uma mudança auditada na quantidade de um item.
// Quantity guarda sempre a magnitude (> 0); a direção vem de Type.
// ItemName/ItemUnit/ItemPrice são um snapshot para o registro sobreviver à exclusão do item.
type StockMovement struct {
	ID        string
	ItemID    string
	UserID    string
	Type      string // entrada, saida, edicao
	Quantity  decimal.Decimal
	ItemName  string
	ItemUnit  string
	ItemPrice decimal.Decimal
	Sector    string // snapshot do setor do item, usado nos filtros de relatório
	Notes     string
	CreatedAt time.Time
}
