package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type PagoStore struct {
	db *sqlx.DB
}

const (
	PagoProgramado = "programado"
	PagoCompletado = "completado"
	PagoCancelado  = "cancelado"
)

func (ps *PagoStore) List(ctx context.Context, f PagoFilter) ([]Pago, int, error) {
	conditions := []string{}
	args := []any{}
	if f.OrdenCompraID != nil {
		args = append(args, *f.OrdenCompraID)
		conditions = append(conditions, fmt.Sprintf("orden_compra_id = $%d", len(args)))
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM pagos %s", where)
	if err := ps.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count pagos: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM pagos %s
		ORDER BY fecha_programada DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var pagos []Pago
	if err := ps.db.SelectContext(ctx, &pagos, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query pagos: %w", err)
	}
	return pagos, total, nil
}

func (ps *PagoStore) GetByID(ctx context.Context, id uuid.UUID) (*Pago, error) {
	var pago Pago
	err := ps.db.GetContext(ctx, &pago, "SELECT * FROM pagos WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}
	return &pago, nil
}

// Create inserts the payment after locking its order row and checking the
// outstanding balance. A payment arriving already 'completado' adjusts the
// order's paid/pending totals in the same transaction.
func (ps *PagoStore) Create(ctx context.Context, pago *Pago) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saldo, err := lockSaldo(ctx, tx, pago.OrdenCompraID)
	if err != nil {
		return err
	}
	if pago.Monto.GreaterThan(saldo) {
		return NewValidationError(
			"el monto del pago ($%s) excede el saldo pendiente de la orden ($%s)",
			pago.Monto.StringFixed(2), saldo.StringFixed(2))
	}

	query := `
		INSERT INTO pagos (
			numero_pago, obra_id, proveedor_id, orden_compra_id, monto, metodo_pago,
			fecha_programada, fecha_procesado, estado, referencia, comprobante,
			observaciones, procesado_por
		) VALUES (
			:numero_pago, :obra_id, :proveedor_id, :orden_compra_id, :monto, :metodo_pago,
			:fecha_programada, :fecha_procesado, :estado, :referencia, :comprobante,
			:observaciones, :procesado_por
		)
		RETURNING id, created_at, updated_at`

	rows, err := tx.NamedQuery(query, pago)
	if err != nil {
		return translate(err)
	}
	if rows.Next() {
		if err := rows.Scan(&pago.ID, &pago.CreatedAt, &pago.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan inserted pago: %w", err)
		}
	}
	rows.Close()

	if pago.Estado == PagoCompletado {
		if err := aplicarSaldo(ctx, tx, pago.OrdenCompraID, pago.Monto); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (ps *PagoStore) Update(ctx context.Context, id uuid.UUID, patch PagoPatch) (*Pago, error) {
	pago, err := ps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pago.Estado == PagoCompletado && patch.Monto != nil {
		return nil, NewValidationError("no se puede modificar el monto de un pago completado")
	}

	if patch.Monto != nil {
		pago.Monto = *patch.Monto
	}
	if patch.MetodoPago != nil {
		pago.MetodoPago = patch.MetodoPago
	}
	if patch.FechaProgramada != nil {
		pago.FechaProgramada = *patch.FechaProgramada
	}
	if patch.Referencia != nil {
		pago.Referencia = patch.Referencia
	}
	if patch.Comprobante != nil {
		pago.Comprobante = patch.Comprobante
	}
	if patch.Observaciones != nil {
		pago.Observaciones = patch.Observaciones
	}

	query := `
		UPDATE pagos SET
			monto = :monto,
			metodo_pago = :metodo_pago,
			fecha_programada = :fecha_programada,
			referencia = :referencia,
			comprobante = :comprobante,
			observaciones = :observaciones,
			updated_at = NOW()
		WHERE id = :id`

	if _, err := ps.db.NamedExecContext(ctx, query, pago); err != nil {
		return nil, translate(err)
	}
	return ps.GetByID(ctx, id)
}

// Procesar marks a scheduled payment as completed and applies its amount to
// the order balance. Processing an already completed payment is a no-op.
func (ps *PagoStore) Procesar(ctx context.Context, id uuid.UUID, procesadoPor string) (*Pago, error) {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pago Pago
	err = tx.GetContext(ctx, &pago, "SELECT * FROM pagos WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, translate(err)
	}
	if pago.Estado == PagoCompletado {
		return &pago, nil
	}
	if pago.Estado == PagoCancelado {
		return nil, NewValidationError("no se puede procesar un pago cancelado")
	}

	if _, err := lockSaldo(ctx, tx, pago.OrdenCompraID); err != nil {
		return nil, err
	}

	query := `
		UPDATE pagos SET
			estado = 'completado',
			fecha_procesado = NOW(),
			procesado_por = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING *`

	if err := tx.GetContext(ctx, &pago, query, id, procesadoPor); err != nil {
		return nil, translate(err)
	}

	if err := aplicarSaldo(ctx, tx, pago.OrdenCompraID, pago.Monto); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &pago, nil
}

// Delete removes the payment; a completed payment restores its amount to
// the order balance first.
func (ps *PagoStore) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var pago Pago
	err = tx.GetContext(ctx, &pago, "SELECT * FROM pagos WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return translate(err)
	}

	if pago.Estado == PagoCompletado {
		if _, err := lockSaldo(ctx, tx, pago.OrdenCompraID); err != nil {
			return err
		}
		if err := aplicarSaldo(ctx, tx, pago.OrdenCompraID, pago.Monto.Neg()); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM pagos WHERE id = $1", id); err != nil {
		return translate(err)
	}
	return tx.Commit()
}

// SiguienteNumero yields the next PAG-YYYY-NNN consecutive for the year.
func (ps *PagoStore) SiguienteNumero(ctx context.Context, year int) (string, error) {
	return siguienteNumero(ctx, ps.db, "pagos", "numero_pago", "PAG", year)
}

func lockSaldo(ctx context.Context, tx *sqlx.Tx, ordenID uuid.UUID) (decimal.Decimal, error) {
	var saldo decimal.Decimal
	err := tx.GetContext(ctx, &saldo,
		"SELECT saldo_pendiente FROM ordenes_compra WHERE id = $1 FOR UPDATE", ordenID)
	if err != nil {
		return decimal.Decimal{}, translate(err)
	}
	return saldo, nil
}

// aplicarSaldo adjusts the order's cached paid/pending totals as a single
// statement so concurrent payments cannot lose updates.
func aplicarSaldo(ctx context.Context, tx *sqlx.Tx, ordenID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE ordenes_compra SET
			monto_pagado = monto_pagado + $2,
			saldo_pendiente = saldo_pendiente - $2,
			estado_pago = CASE
				WHEN saldo_pendiente - $2 <= 0 THEN 'pagado'
				WHEN monto_pagado + $2 > 0 THEN 'parcial'
				ELSE 'pendiente'
			END,
			updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, ordenID, delta); err != nil {
		return fmt.Errorf("failed to adjust orden balance: %w", err)
	}
	return nil
}
