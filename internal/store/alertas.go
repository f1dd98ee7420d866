package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type AlertaStore struct {
	db *sqlx.DB
}

// OrdenesPorVencer returns open orders carrying an outstanding balance from
// suppliers that extend credit terms. Draft, paid and cancelled orders do
// not generate alerts.
func (as *AlertaStore) OrdenesPorVencer(ctx context.Context) ([]OrdenPorVencer, error) {
	query := `
		SELECT
			oc.id AS orden_compra_id,
			oc.numero_orden,
			o.codigo AS obra_codigo,
			o.nombre AS obra_nombre,
			p.razon_social AS proveedor,
			oc.fecha_emision AS fecha_orden,
			p.credito_dias AS dias_credito,
			oc.total AS total_orden,
			oc.monto_pagado,
			oc.saldo_pendiente AS monto_pendiente
		FROM ordenes_compra oc
		JOIN obras o ON o.id = oc.obra_id
		JOIN proveedores p ON p.id = oc.proveedor_id
		WHERE oc.estado IN ('emitida', 'recibida', 'facturada')
			AND oc.saldo_pendiente > 0
			AND p.credito_dias > 0
		ORDER BY oc.fecha_emision`

	ordenes := []OrdenPorVencer{}
	if err := as.db.SelectContext(ctx, &ordenes, query); err != nil {
		return nil, fmt.Errorf("failed to query ordenes por vencer: %w", err)
	}
	return ordenes, nil
}
