package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vncerqueira/estoquebar-api/internal/domain"
	"github.com/vncerqueira/estoquebar-api/internal/domain/entity"
	"github.com/vncerqueira/estoquebar-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementação de MovementRepository sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador de movimentos. Passar pool ou tx.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, item_id, user_id, type, quantity, item_name, item_unit, item_price, sector, notes, created_at`

// Create persiste um movimento já validado pelo ledger.
func (r *MovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO movements (id, item_id, user_id, type, quantity, item_name, item_unit, item_price, sector, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.UserID, m.Type, m.Quantity,
		m.ItemName, m.ItemUnit, m.ItemPrice, m.Sector,
		nullable(m.Notes), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtém um movimento por ID. Devolve nil, nil quando não existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// List devolve movimentos filtrados, dos mais recentes para os mais antigos.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query, args := buildMovementListQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// buildMovementListQuery monta o SQL de listagem com parâmetros posicionais.
// O filtro de data vira uma janela semiaberta [00:00 do dia, 00:00 do dia
// seguinte) no fuso da própria data, cobrindo o dia inteiro sem depender de
// precisão de timestamp.
func buildMovementListQuery(filter repository.MovementFilter) (string, []any) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	args := []any{}
	idx := 1

	if filter.Date != nil {
		dayStart := time.Date(filter.Date.Year(), filter.Date.Month(), filter.Date.Day(), 0, 0, 0, 0, filter.Date.Location())
		query += fmt.Sprintf(" AND created_at >= $%d AND created_at < $%d", idx, idx+1)
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
		idx += 2
	}
	if filter.Sector != "" {
		query += fmt.Sprintf(" AND sector = $%d", idx)
		args = append(args, filter.Sector)
		idx++
	}
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", idx)
		args = append(args, filter.UserID)
		idx++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, filter.Limit)
		idx++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, filter.Offset)
	}
	return query, args
}

// Delete apaga o registro de movimento (cancelamento).
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var (
		m     entity.StockMovement
		notes *string
	)
	err := row.Scan(
		&m.ID, &m.ItemID, &m.UserID, &m.Type, &m.Quantity,
		&m.ItemName, &m.ItemUnit, &m.ItemPrice, &m.Sector,
		&notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Notes = deref(notes)
	return &m, nil
}
