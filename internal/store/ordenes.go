package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type OrdenStore struct {
	db *sqlx.DB
}

func (ost *OrdenStore) List(ctx context.Context, f OrdenFilter) ([]OrdenCompra, int, error) {
	conditions := []string{}
	args := []any{}
	if f.ObraID != nil {
		args = append(args, *f.ObraID)
		conditions = append(conditions, fmt.Sprintf("obra_id = $%d", len(args)))
	}
	if f.ProveedorID != nil {
		args = append(args, *f.ProveedorID)
		conditions = append(conditions, fmt.Sprintf("proveedor_id = $%d", len(args)))
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
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM ordenes_compra %s", where)
	if err := ost.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count ordenes: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM ordenes_compra %s
		ORDER BY fecha_emision DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit(), f.Offset())

	var ordenes []OrdenCompra
	if err := ost.db.SelectContext(ctx, &ordenes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to query ordenes: %w", err)
	}

	for i := range ordenes {
		items, err := ost.itemsFor(ctx, ordenes[i].ID)
		if err != nil {
			return nil, 0, err
		}
		ordenes[i].Items = items
	}
	return ordenes, total, nil
}

func (ost *OrdenStore) GetByID(ctx context.Context, id uuid.UUID) (*OrdenCompra, error) {
	var orden OrdenCompra
	err := ost.db.GetContext(ctx, &orden, "SELECT * FROM ordenes_compra WHERE id = $1", id)
	if err != nil {
		return nil, translate(err)
	}

	items, err := ost.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	orden.Items = items
	return &orden, nil
}

func (ost *OrdenStore) itemsFor(ctx context.Context, ordenID uuid.UUID) ([]OrdenCompraItem, error) {
	items := []OrdenCompraItem{}
	query := "SELECT * FROM orden_compra_items WHERE orden_compra_id = $1 ORDER BY created_at"
	if err := ost.db.SelectContext(ctx, &items, query, ordenID); err != nil {
		return nil, fmt.Errorf("failed to query orden items: %w", err)
	}
	return items, nil
}

// Create inserts the order and its items in one transaction. Totals arrive
// already computed; saldo_pendiente starts at the order total.
func (ost *OrdenStore) Create(ctx context.Context, orden *OrdenCompra) error {
	tx, err := ost.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orden.SaldoPendiente = orden.Total

	query := `
		INSERT INTO ordenes_compra (
			numero_orden, obra_id, proveedor_id, requisicion_id, fecha_entrega,
			estado, tipo_entrega, subtotal, descuento, descuento_monto,
			tiene_iva, iva, total, saldo_pendiente, observaciones, creado_por
		) VALUES (
			:numero_orden, :obra_id, :proveedor_id, :requisicion_id, :fecha_entrega,
			:estado, :tipo_entrega, :subtotal, :descuento, :descuento_monto,
			:tiene_iva, :iva, :total, :saldo_pendiente, :observaciones, :creado_por
		)
		RETURNING id, fecha_emision, estado_pago, created_at, updated_at`

	rows, err := tx.NamedQuery(query, orden)
	if err != nil {
		return translate(err)
	}
	if rows.Next() {
		if err := rows.Scan(&orden.ID, &orden.FechaEmision, &orden.EstadoPago, &orden.CreatedAt, &orden.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan inserted orden: %w", err)
		}
	}
	rows.Close()

	if err := insertOrdenItems(tx, orden); err != nil {
		return err
	}
	return tx.Commit()
}

// Update rewrites the order header and, when replaceItems is set, swaps the
// full item list. Header and items move together or not at all.
func (ost *OrdenStore) Update(ctx context.Context, id uuid.UUID, orden *OrdenCompra, replaceItems bool) error {
	tx, err := ost.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE ordenes_compra SET
			fecha_entrega = :fecha_entrega,
			estado = :estado,
			tipo_entrega = :tipo_entrega,
			subtotal = :subtotal,
			descuento = :descuento,
			descuento_monto = :descuento_monto,
			tiene_iva = :tiene_iva,
			iva = :iva,
			total = :total,
			saldo_pendiente = :total - monto_pagado,
			observaciones = :observaciones,
			updated_at = NOW()
		WHERE id = :id`

	result, err := tx.NamedExecContext(ctx, query, orden)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}

	if replaceItems {
		if _, err := tx.ExecContext(ctx, "DELETE FROM orden_compra_items WHERE orden_compra_id = $1", id); err != nil {
			return fmt.Errorf("failed to delete orden items: %w", err)
		}
		if err := insertOrdenItems(tx, orden); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func insertOrdenItems(tx *sqlx.Tx, orden *OrdenCompra) error {
	for i := range orden.Items {
		orden.Items[i].OrdenCompraID = orden.ID

		query := `
			INSERT INTO orden_compra_items (
				orden_compra_id, cantidad, unidad, descripcion, precio_unitario, total
			) VALUES (
				:orden_compra_id, :cantidad, :unidad, :descripcion, :precio_unitario, :total
			)
			RETURNING id, created_at`

		rows, err := tx.NamedQuery(query, orden.Items[i])
		if err != nil {
			return translate(err)
		}
		if rows.Next() {
			if err := rows.Scan(&orden.Items[i].ID, &orden.Items[i].CreatedAt); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan inserted item: %w", err)
			}
		}
		rows.Close()
	}
	return nil
}

func (ost *OrdenStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ost.db.ExecContext(ctx, "DELETE FROM ordenes_compra WHERE id = $1", id)
	if err != nil {
		return translate(err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SiguienteNumero yields the next OC-YYYY-NNN consecutive for the year.
func (ost *OrdenStore) SiguienteNumero(ctx context.Context, year int) (string, error) {
	return siguienteNumero(ctx, ost.db, "ordenes_compra", "numero_orden", "OC", year)
}
