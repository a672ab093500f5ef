package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
)

// DailyTotalsResult totais de um dia: contagem e soma de magnitudes por direção.
type DailyTotalsResult struct {
	Day        time.Time
	EntryCount int
	ExitCount  int
	EntrySum   decimal.Decimal
	ExitSum    decimal.Decimal
	EntryValue decimal.Decimal // soma de quantity * item_price (snapshot) das entradas
	ExitValue  decimal.Decimal
}

// EmployeeRankingResult um funcionário no ranking de movimentos do período.
type EmployeeRankingResult struct {
	UserID        string
	UserName      string
	MovementCount int
	EntryCount    int
	ExitCount     int
}

// ReportRepository consultas de leitura para o dashboard (agregações).
type ReportRepository interface {
	// GetDailyTotals agrega os movimentos do intervalo [start, end].
	GetDailyTotals(ctx context.Context, start, end time.Time) (*DailyTotalsResult, error)
	// GetDailySeries agrega por dia dentro do intervalo (série semanal).
	GetDailySeries(ctx context.Context, start, end time.Time) ([]DailyTotalsResult, error)
	// GetEmployeeRanking ordena usuários por volume de movimentos no período.
	GetEmployeeRanking(ctx context.Context, start, end time.Time, limit int) ([]EmployeeRankingResult, error)
	// ListLowStock devolve itens com quantity <= min_quantity (min_quantity não nulo).
	ListLowStock(ctx context.Context, sector string) ([]*entity.InventoryItem, error)
}
