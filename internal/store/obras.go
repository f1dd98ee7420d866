package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ObraStore struct {
	db *sqlx.DB
}

func (os *ObraStore) List(ctx context.Context, f ObraFilter) ([]Obra, int, error) {
	where := ""
	args := []any{}
	if f.Estado != "" {
		where = "WHERE LOWER(estado) = LOWER($1)"
		args = append(args, f.Estado)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM obras %s", where)
	if err := os.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count obras: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM obras %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var obras []Obra
	if err := os.db.SelectContext(ctx, &obras, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query obras: %w", err)
	}
	return obras, total, nil
}

func (os *ObraStore) GetByID(ctx context.Context, id uuid.UUID) (*Obra, error) {
	var obra Obra
	err := os.db.GetContext(ctx, &obra, "SELECT * FROM obras WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	return &obra, nil
}

func (os *ObraStore) Create(ctx context.Context, obra *Obra) error {
	query := `
		INSERT INTO obras (
			codigo, nombre, numero_contrato, cliente, residente, direccion,
			monto_contratado, fecha_inicio, fecha_fin_programada, plazo_ejecucion, estado
		) VALUES (
			:codigo, :nombre, :numero_contrato, :cliente, :residente, :direccion,
			:monto_contratado, :fecha_inicio, :fecha_fin_programada, :plazo_ejecucion, :estado
		)
		RETURNING id, created_at, updated_at`

	rows, err := os.db.NamedQueryContext(ctx, query, obra)
	if err != nil {
		return translate(err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&obra.ID, &obra.CreatedAt, &obra.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan inserted obra: %w", err)
		}
	}
	return translate(rows.Err())
}

func (os *ObraStore) Update(ctx context.Context, id uuid.UUID, patch ObraPatch) (*Obra, error) {
	obra, err := os.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Nombre != nil {
		obra.Nombre = *patch.Nombre
	}
	if patch.Cliente != nil {
		obra.Cliente = *patch.Cliente
	}
	if patch.Residente != nil {
		obra.Residente = *patch.Residente
	}
	if patch.Direccion != nil {
		obra.Direccion = patch.Direccion
	}
	if patch.MontoContratado != nil {
		obra.MontoContratado = *patch.MontoContratado
	}
	if patch.FechaInicio != nil {
		obra.FechaInicio = *patch.FechaInicio
	}
	if patch.FechaFinProgramada != nil {
		obra.FechaFinProgramada = *patch.FechaFinProgramada
	}
	if patch.PlazoEjecucion != nil {
		obra.PlazoEjecucion = *patch.PlazoEjecucion
	}
	if patch.Estado != nil {
		obra.Estado = *patch.Estado
	}

	query := `
		UPDATE obras SET
			nombre = :nombre,
			cliente = :cliente,
			residente = :residente,
			direccion = :direccion,
			monto_contratado = :monto_contratado,
			fecha_inicio = :fecha_inicio,
			fecha_fin_programada = :fecha_fin_programada,
			plazo_ejecucion = :plazo_ejecucion,
			estado = :estado,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := os.db.NamedExecContext(ctx, query, obra); err != nil {
		return nil, translate(err)
	}
	return os.GetByID(ctx, id)
}

func (os *ObraStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := os.db.ExecContext(ctx, "DELETE FROM obras WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
