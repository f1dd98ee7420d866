package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type GastoStore struct {
	db *sqlx.DB
}

func (gs *GastoStore) List(ctx context.Context, f GastoFilter) ([]Gasto, int, error) {
	conditions := []string{}
	args := []any{}
	if f.ObraID != nil {
		args = append(args, *f.ObraID)
		conditions = append(conditions, fmt.Sprintf("obra_id = $%d", len(args)))
	}
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		conditions = append(conditions, fmt.Sprintf("tipo = $%d", len(args)))
	}
	if f.Mes != "" {
		args = append(args, f.Mes)
		conditions = append(conditions, fmt.Sprintf("TO_CHAR(fecha, 'YYYY-MM') = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM gastos %s", where)
	if err := gs.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count gastos: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM gastos %s
		ORDER BY fecha DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var gastos []Gasto
	if err := gs.db.SelectContext(ctx, &gastos, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query gastos: %w", err)
	}
	return gastos, total, nil
}

func (gs *GastoStore) Create(ctx context.Context, gasto *Gasto) error {
	if gasto.Tipo == GastoDirecto && gasto.ObraID == nil {
		return NewValidationError("un gasto directo requiere obra_id")
	}

	query := `
		INSERT INTO gastos (obra_id, tipo, concepto, monto, fecha)
		VALUES (:obra_id, :tipo, :concepto, :monto, :fecha)
		RETURNING id, created_at`

	rows, err := gs.db.NamedQueryContext(ctx, query, gasto)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&gasto.ID, &gasto.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted gasto: %w", err)
		}
	}
	return translate(rows.Err())
}

func (gs *GastoStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := gs.db.ExecContext(ctx, "DELETE FROM gastos WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
