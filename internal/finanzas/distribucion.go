package finanzas

import "github.com/shopspring/decimal"

// GastoDirectoObra is a project's summed direct cost for one month.
type GastoDirectoObra struct {
	ObraID     string
	ObraCodigo string
	ObraNombre string
	Monto      decimal.Decimal
}

// AsignacionIndirecta is one project's slice of the monthly indirect pool.
type AsignacionIndirecta struct {
	ObraID             string
	ObraCodigo         string
	ObraNombre         string
	GastosDirectos     decimal.Decimal
	PorcentajeAsignado decimal.Decimal
	MontoAsignado      decimal.Decimal
	TotalObra          decimal.Decimal
}

// DistribuirIndirectos allocates the monthly indirect-cost pool across
// projects proportionally to each project's direct costs. Projects with zero
// direct cost are excluded. The last allocation absorbs the rounding
// remainder so the allocated amounts always sum back to the pool.
//
// When no project has direct costs the result is empty even if the pool is
// nonzero; the caller decides how to report the unallocated pool. There is
// no equal-split fallback.
func DistribuirIndirectos(totalIndirecto decimal.Decimal, directos []GastoDirectoObra) []AsignacionIndirecta {
	incluidos := make([]GastoDirectoObra, 0, len(directos))
	totalDirecto := decimal.Zero
	for _, d := range directos {
		if d.Monto.IsPositive() {
			incluidos = append(incluidos, d)
			totalDirecto = totalDirecto.Add(d.Monto)
		}
	}

	if len(incluidos) == 0 || totalDirecto.IsZero() {
		return []AsignacionIndirecta{}
	}

	asignaciones := make([]AsignacionIndirecta, 0, len(incluidos))
	repartido := decimal.Zero
	for i, d := range incluidos {
		porcentaje := d.Monto.Div(totalDirecto).Mul(cien).Round(4)

		var monto decimal.Decimal
		if i == len(incluidos)-1 {
			monto = totalIndirecto.Sub(repartido)
		} else {
			monto = totalIndirecto.Mul(d.Monto).Div(totalDirecto).Round(2)
			repartido = repartido.Add(monto)
		}

		asignaciones = append(asignaciones, AsignacionIndirecta{
			ObraID:             d.ObraID,
			ObraCodigo:         d.ObraCodigo,
			ObraNombre:         d.ObraNombre,
			GastosDirectos:     d.Monto,
			PorcentajeAsignado: porcentaje,
			MontoAsignado:      monto,
			TotalObra:          d.Monto.Add(monto),
		})
	}

	return asignaciones
}
