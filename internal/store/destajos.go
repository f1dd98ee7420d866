package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type DestajoStore struct {
	db *sqlx.DB
}

func (ds *DestajoStore) List(ctx context.Context, f DestajoFilter) ([]Destajo, int, error) {
	conditions := []string{}
	args := []any{}
	if f.ObraID != nil {
		args = append(args, *f.ObraID)
		conditions = append(conditions, fmt.Sprintf("obra_id = $%d", len(args)))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		conditions = append(conditions, fmt.Sprintf("estado = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM destajos %s", where)
	if err := ds.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count destajos: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM destajos %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var destajos []Destajo
	if err := ds.db.SelectContext(ctx, &destajos, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query destajos: %w", err)
	}
	return destajos, total, nil
}

func (ds *DestajoStore) Create(ctx context.Context, destajo *Destajo) error {
	if len(destajo.Metadata) == 0 {
		destajo.Metadata = []byte("{}")
	}

	query := `
		INSERT INTO destajos (
			obra_id, destajista, destajista_rfc, destajista_telefono, concepto,
			categoria, semana, fecha_inicio, fecha_fin, cantidad, unidad,
			precio_unitario, total, estado, observaciones, metadata
		) VALUES (
			:obra_id, :destajista, :destajista_rfc, :destajista_telefono, :concepto,
			:categoria, :semana, :fecha_inicio, :fecha_fin, :cantidad, :unidad,
			:precio_unitario, :total, :estado, :observaciones, :metadata
		)
		RETURNING id, created_at`

	rows, err := ds.db.NamedQueryContext(ctx, query, destajo)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&destajo.ID, &destajo.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted destajo: %w", err)
		}
	}
	return translate(rows.Err())
}
