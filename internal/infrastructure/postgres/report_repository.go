package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de leitura para o dashboard.
type ReportRepo struct {
	q Querier
}

func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetDailyTotals agrega contagens, magnitudes e valores (snapshot de preço) do intervalo.
// Movimentos de edição ficam fora: são trilha de auditoria, não fluxo de estoque.
func (r *ReportRepo) GetDailyTotals(ctx context.Context, start, end time.Time) (*repository.DailyTotalsResult, error) {
	query := `
		SELECT
			count(*) FILTER (WHERE type = 'entrada'),
			count(*) FILTER (WHERE type = 'saida'),
			COALESCE(sum(quantity) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(sum(quantity) FILTER (WHERE type = 'saida'), 0),
			COALESCE(sum(quantity * item_price) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(sum(quantity * item_price) FILTER (WHERE type = 'saida'), 0)
		FROM movements
		WHERE created_at >= $1 AND created_at <= $2 AND type <> 'edicao'`

	result := repository.DailyTotalsResult{Day: start}
	err := r.q.QueryRow(ctx, query, start, end).Scan(
		&result.EntryCount, &result.ExitCount,
		&result.EntrySum, &result.ExitSum,
		&result.EntryValue, &result.ExitValue,
	)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	return &result, nil
}

// GetDailySeries agrega por dia dentro do intervalo (dias sem movimento não aparecem).
func (r *ReportRepo) GetDailySeries(ctx context.Context, start, end time.Time) ([]repository.DailyTotalsResult, error) {
	query := `
		SELECT
			date_trunc('day', created_at) AS day,
			count(*) FILTER (WHERE type = 'entrada'),
			count(*) FILTER (WHERE type = 'saida'),
			COALESCE(sum(quantity) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(sum(quantity) FILTER (WHERE type = 'saida'), 0),
			COALESCE(sum(quantity * item_price) FILTER (WHERE type = 'entrada'), 0),
			COALESCE(sum(quantity * item_price) FILTER (WHERE type = 'saida'), 0)
		FROM movements
		WHERE created_at >= $1 AND created_at <= $2 AND type <> 'edicao'
		GROUP BY day
		ORDER BY day`

	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("daily series: %w", err)
	}
	defer rows.Close()

	var series []repository.DailyTotalsResult
	for rows.Next() {
		var d repository.DailyTotalsResult
		err := rows.Scan(
			&d.Day, &d.EntryCount, &d.ExitCount,
			&d.EntrySum, &d.ExitSum, &d.EntryValue, &d.ExitValue,
		)
		if err != nil {
			return nil, fmt.Errorf("scan daily series: %w", err)
		}
		series = append(series, d)
	}
	return series, rows.Err()
}

// GetEmployeeRanking ordena usuários por volume de movimentos no período.
func (r *ReportRepo) GetEmployeeRanking(ctx context.Context, start, end time.Time, limit int) ([]repository.EmployeeRankingResult, error) {
	query := `
		SELECT
			m.user_id,
			u.name,
			count(*),
			count(*) FILTER (WHERE m.type = 'entrada'),
			count(*) FILTER (WHERE m.type = 'saida')
		FROM movements m
		JOIN users u ON u.id = m.user_id
		WHERE m.created_at >= $1 AND m.created_at <= $2 AND m.type <> 'edicao'
		GROUP BY m.user_id, u.name
		ORDER BY count(*) DESC, u.name
		LIMIT $3`

	rows, err := r.q.Query(ctx, query, start, end, limit)
	if err != nil {
		return nil, fmt.Errorf("employee ranking: %w", err)
	}
	defer rows.Close()

	var ranking []repository.EmployeeRankingResult
	for rows.Next() {
		var e repository.EmployeeRankingResult
		if err := rows.Scan(&e.UserID, &e.UserName, &e.MovementCount, &e.EntryCount, &e.ExitCount); err != nil {
			return nil, fmt.Errorf("scan employee ranking: %w", err)
		}
		ranking = append(ranking, e)
	}
	return ranking, rows.Err()
}

// ListLowStock devolve itens no limiar de alerta (quantity <= min_quantity).
func (r *ReportRepo) ListLowStock(ctx context.Context, sector string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE min_quantity IS NOT NULL AND quantity <= min_quantity`
	args := []any{}
	if sector != "" {
		query += ` AND sector = $1`
		args = append(args, sector)
	}
	query += ` ORDER BY lower(name)`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan low stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
