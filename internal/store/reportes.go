package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReporteStore struct {
	db *sqlx.DB
}

func (rs *ReporteStore) Estadisticas(ctx context.Context) (*Estadisticas, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM obras) AS total_obras,
			(SELECT COUNT(*) FROM obras WHERE LOWER(estado) = 'activa') AS obras_activas,
			(SELECT COUNT(*) FROM ordenes_compra WHERE estado != 'cancelada') AS total_ordenes,
			(SELECT COUNT(*) FROM requisiciones WHERE estado != 'rechazada') AS total_requisiciones,
			(SELECT COUNT(*) FROM pagos WHERE estado = 'completado') AS total_pagos,
			(SELECT COALESCE(SUM(total), 0) FROM ordenes_compra WHERE estado != 'cancelada') AS monto_total_ordenes,
			(SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE estado = 'completado') AS monto_total_pagado,
			(SELECT COALESCE(SUM(saldo_pendiente), 0) FROM ordenes_compra WHERE estado != 'cancelada') AS monto_pendiente_pago`

	var stats Estadisticas
	if err := rs.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to query estadisticas: %w", err)
	}
	return &stats, nil
}

// ObraFinanciero aggregates a project's financial picture over a period:
// committed orders, piecework, payments and the cost ledger including the
// project's stored share of distributed indirect costs.
func (rs *ReporteStore) ObraFinanciero(ctx context.Context, obraID uuid.UUID, inicio, fin time.Time) (*ReporteObraFinanciero, error) {
	query := `
		SELECT
			o.id AS obra_id,
			o.codigo AS obra_codigo,
			o.nombre AS obra_nombre,
			o.cliente,
			COALESCE((
				SELECT SUM(total) FROM ordenes_compra
				WHERE obra_id = o.id AND estado != 'cancelada'
					AND fecha_emision BETWEEN $2 AND $3
			), 0) AS total_ordenes_compra,
			COALESCE((
				SELECT SUM(total) FROM destajos
				WHERE obra_id = o.id AND created_at BETWEEN $2 AND $3
			), 0) AS total_destajos,
			COALESCE((
				SELECT SUM(monto) FROM pagos
				WHERE obra_id = o.id AND estado = 'completado'
					AND fecha_programada BETWEEN $2 AND $3
			), 0) AS total_pagado,
			COALESCE((
				SELECT SUM(saldo_pendiente) FROM ordenes_compra
				WHERE obra_id = o.id AND estado != 'cancelada'
					AND fecha_emision BETWEEN $2 AND $3
			), 0) AS pendiente_pago,
			COALESCE((
				SELECT SUM(monto) FROM gastos
				WHERE obra_id = o.id AND tipo = 'directo' AND fecha BETWEEN $2 AND $3
			), 0) AS gastos_directos,
			COALESCE((
				SELECT SUM(monto_asignado) FROM distribucion_gastos_indirectos
				WHERE obra_id = o.id
					AND mes BETWEEN TO_CHAR($2::date, 'YYYY-MM') AND TO_CHAR($3::date, 'YYYY-MM')
			), 0) AS gastos_indirectos_asignados,
			0 AS total_gastos
		FROM obras o
		WHERE o.id = $1`

	var reporte ReporteObraFinanciero
	if err := rs.db.GetContext(ctx, &reporte, query, obraID, inicio, fin); err != nil {
		return nil, translate(err)
	}

	reporte.TotalGastos = reporte.GastosDirectos.Add(reporte.GastosIndirectosAsignados)
	reporte.PeriodoInicio = inicio.Format("2006-01-02")
	reporte.PeriodoFin = fin.Format("2006-01-02")
	return &reporte, nil
}
