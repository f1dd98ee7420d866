package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type DistribucionStore struct {
	db *sqlx.DB
}

// TotalIndirectos sums the month's indirect-cost pool.
func (ds *DistribucionStore) TotalIndirectos(ctx context.Context, mes string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(monto), 0)
		FROM gastos
		WHERE tipo = 'indirecto' AND TO_CHAR(fecha, 'YYYY-MM') = $1`

	var total decimal.Decimal
	if err := ds.db.GetContext(ctx, &total, query, mes); err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to query gastos indirectos: %w", err)
	}
	return total, nil
}

// DirectosPorObra sums the month's direct costs per active project. Only
// active projects participate in the distribution.
func (ds *DistribucionStore) DirectosPorObra(ctx context.Context, mes string) ([]GastoDirectoMes, error) {
	query := `
		SELECT
			o.id AS obra_id,
			o.codigo AS obra_codigo,
			o.nombre AS obra_nombre,
			COALESCE(SUM(g.monto), 0) AS monto
		FROM obras o
		LEFT JOIN gastos g
			ON g.obra_id = o.id
			AND g.tipo = 'directo'
			AND TO_CHAR(g.fecha, 'YYYY-MM') = $1
		WHERE LOWER(o.estado) = 'activa'
		GROUP BY o.id, o.codigo, o.nombre
		ORDER BY o.codigo`

	var directos []GastoDirectoMes
	if err := ds.db.SelectContext(ctx, &directos, query, mes); err != nil {
		return nil, fmt.Errorf("failed to query gastos directos por obra: %w", err)
	}
	return directos, nil
}

// Guardar replaces the stored distribution for the month so re-running a
// calculation never leaves stale rows from projects no longer included.
func (ds *DistribucionStore) Guardar(ctx context.Context, mes string, filas []DistribucionGasto) error {
	tx, err := ds.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM distribucion_gastos_indirectos WHERE mes = $1", mes); err != nil {
		return fmt.Errorf("failed to clear distribucion: %w", err)
	}

	query := `
		INSERT INTO distribucion_gastos_indirectos (
			obra_id, mes, gastos_directos, porcentaje_asignado, monto_asignado, total_obra
		) VALUES (
			:obra_id, :mes, :gastos_directos, :porcentaje_asignado, :monto_asignado, :total_obra
		)`

	for i := range filas {
		filas[i].Mes = mes
		if _, err := tx.NamedExecContext(ctx, query, filas[i]); err != nil {
			return translate(err)
		}
	}
	return tx.Commit()
}

func (ds *DistribucionStore) PorMes(ctx context.Context, mes string) ([]DistribucionGasto, error) {
	query := `
		SELECT
			d.id, d.obra_id, o.codigo AS obra_codigo, o.nombre AS obra_nombre,
			d.mes, d.gastos_directos, d.porcentaje_asignado, d.monto_asignado, d.total_obra
		FROM distribucion_gastos_indirectos d
		JOIN obras o ON o.id = d.obra_id
		WHERE d.mes = $1
		ORDER BY o.codigo`

	filas := []DistribucionGasto{}
	if err := ds.db.SelectContext(ctx, &filas, query, mes); err != nil {
		return nil, fmt.Errorf("failed to query distribucion: %w", err)
	}
	return filas, nil
}
