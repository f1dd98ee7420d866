package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type RequisicionStore struct {
	db *sqlx.DB
}

func (rs *RequisicionStore) List(ctx context.Context, f RequisicionFilter) ([]Requisicion, int, error) {
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM requisiciones %s", where)
	if err := rs.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count requisiciones: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM requisiciones %s
		ORDER BY fecha_solicitud DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var requisiciones []Requisicion
	if err := rs.db.SelectContext(ctx, &requisiciones, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query requisiciones: %w", err)
	}

	for i := range requisiciones {
		items, err := rs.itemsFor(ctx, requisiciones[i].ID)
		if err != nil {
			return nil, 0, err
		}
		requisiciones[i].Items = items
	}
	return requisiciones, total, nil
}

func (rs *RequisicionStore) GetByID(ctx context.Context, id uuid.UUID) (*Requisicion, error) {
	var requisicion Requisicion
	err := rs.db.GetContext(ctx, &requisicion, "SELECT * FROM requisiciones WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}

	items, err := rs.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	requisicion.Items = items
	return &requisicion, nil
}

func (rs *RequisicionStore) itemsFor(ctx context.Context, requisicionID uuid.UUID) ([]RequisicionItem, error) {
	items := []RequisicionItem{}
	query := "SELECT * FROM requisicion_items WHERE requisicion_id = $1 ORDER BY created_at"
	if err := rs.db.SelectContext(ctx, &items, query, requisicionID); err != nil {
		return nil, fmt.Errorf("failed to query requisicion items: %w", err)
	}
	return items, nil
}

// Create inserts the requisition and its items in one transaction; a failed
// item insert rolls back the header.
func (rs *RequisicionStore) Create(ctx context.Context, requisicion *Requisicion) error {
	tx, err := rs.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO requisiciones (
			numero_requisicion, obra_id, solicitado_por, urgencia, estado, observaciones
		) VALUES (
			:numero_requisicion, :obra_id, :solicitado_por, :urgencia, :estado, :observaciones
		)
		RETURNING id, fecha_solicitud, created_at, updated_at`

	rows, err := tx.NamedQuery(query, requisicion)
	if err != nil {
		return translate(err)
	}
	if rows.Next() {
		if err := rows.Scan(&requisicion.ID, &requisicion.FechaSolicitud, &requisicion.CreatedAt, &requisicion.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan inserted requisicion: %w", err)
		}
	}
	rows.Close()

	for i := range requisicion.Items {
		requisicion.Items[i].RequisicionID = requisicion.ID

		itemQuery := `
			INSERT INTO requisicion_items (requisicion_id, cantidad, unidad, descripcion)
			VALUES (:requisicion_id, :cantidad, :unidad, :descripcion)
			RETURNING id, created_at`

		itemRows, err := tx.NamedQuery(itemQuery, requisicion.Items[i])
		if err != nil {
			return translate(err)
		}
		if itemRows.Next() {
			if err := itemRows.Scan(&requisicion.Items[i].ID, &requisicion.Items[i].CreatedAt); err != nil {
				itemRows.Close()
				return fmt.Errorf("failed to scan inserted item: %w", err)
			}
		}
		itemRows.Close()
	}

	return tx.Commit()
}

func (rs *RequisicionStore) Update(ctx context.Context, id uuid.UUID, patch RequisicionPatch) (*Requisicion, error) {
	requisicion, err := rs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Urgencia != nil {
		requisicion.Urgencia = *patch.Urgencia
	}
	if patch.Estado != nil {
		requisicion.Estado = *patch.Estado
	}
	if patch.Observaciones != nil {
		requisicion.Observaciones = patch.Observaciones
	}
	if patch.AprobadoPor != nil {
		requisicion.AprobadoPor = patch.AprobadoPor
	}
	if patch.MotivoRechazo != nil {
		requisicion.MotivoRechazo = patch.MotivoRechazo
	}

	query := `
		UPDATE requisiciones SET
			urgencia = :urgencia,
			estado = :estado,
			observaciones = :observaciones,
			aprobado_por = :aprobado_por,
			fecha_aprobacion = CASE WHEN estado != 'aprobada' AND :estado = 'aprobada' THEN NOW() ELSE fecha_aprobacion END,
			motivo_rechazo = :motivo_rechazo,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := rs.db.NamedExecContext(ctx, query, requisicion); err != nil {
		return nil, translate(err)
	}
	return rs.GetByID(ctx, id)
}

func (rs *RequisicionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := rs.db.ExecContext(ctx, "DELETE FROM requisiciones WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SiguienteNumero yields the next REQ-YYYY-NNN consecutive for the year.
func (rs *RequisicionStore) SiguienteNumero(ctx context.Context, year int) (string, error) {
	return siguienteNumero(ctx, rs.db, "requisiciones", "numero_requisicion", "REQ", year)
}

// siguienteNumero produces PREFIX-YYYY-NNN consecutives by inspecting the
// highest number already stored for the year.
func siguienteNumero(ctx context.Context, db *sqlx.DB, table, column, prefix string, year int) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s LIKE $1
		ORDER BY %s DESC
		LIMIT 1`, column, table, column, column)

	var ultimo string
	err := db.GetContext(ctx, &ultimo, query, pattern)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("failed to query last consecutive: %w", err)
	}

	siguiente := 1
	if ultimo != "" {
		parts := strings.Split(ultimo, "-")
		if n, err := strconv.Atoi(parts[len(parts)-1]); err == nil {
			siguiente = n + 1
		}
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, siguiente), nil
}
