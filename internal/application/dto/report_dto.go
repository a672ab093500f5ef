package dto

import "github.com/shopspring/decimal"

// DailyTotalsDTO totais de movimentos de um dia.
type DailyTotalsDTO struct {
	Day        string          `json:"day"` // YYYY-MM-DD
	EntryCount int             `json:"entry_count"`
	ExitCount  int             `json:"exit_count"`
	EntrySum   decimal.Decimal `json:"entry_sum"`
	ExitSum    decimal.Decimal `json:"exit_sum"`
	EntryValue decimal.Decimal `json:"entry_value"` // quantity * preço snapshot
	ExitValue  decimal.Decimal `json:"exit_value"`
}

// EmployeeRankingDTO posição de um funcionário no ranking de movimentos.
type EmployeeRankingDTO struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	MovementCount int    `json:"movement_count"`
	EntryCount    int    `json:"entry_count"`
	ExitCount     int    `json:"exit_count"`
}

// DashboardSummaryDTO resposta de GET /api/dashboard/summary.
// KPIs do dia, série dos últimos 7 dias, ranking de funcionários e alertas de
// estoque baixo.
type DashboardSummaryDTO struct {
	Today     DailyTotalsDTO       `json:"today"`
	Weekly    []DailyTotalsDTO     `json:"weekly"`
	Ranking   []EmployeeRankingDTO `json:"ranking"`
	LowStock  []*ItemResponse      `json:"low_stock"`
	DateLabel string               `json:"date_label"` // ex: "Setembro 2026"
}
