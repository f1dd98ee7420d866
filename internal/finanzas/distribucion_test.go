package finanzas

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistribuirIndirectosProporcional(t *testing.T) {
	directos := []GastoDirectoObra{
		{ObraID: "a", ObraCodigo: "OBR-001", Monto: dec("60000")},
		{ObraID: "b", ObraCodigo: "OBR-002", Monto: dec("40000")},
	}

	asignaciones := DistribuirIndirectos(dec("10000"), directos)
	require.Len(t, asignaciones, 2)

	assert.True(t, dec("60").Equal(asignaciones[0].PorcentajeAsignado))
	assert.True(t, dec("6000").Equal(asignaciones[0].MontoAsignado))
	assert.True(t, dec("66000").Equal(asignaciones[0].TotalObra))

	assert.True(t, dec("40").Equal(asignaciones[1].PorcentajeAsignado))
	assert.True(t, dec("4000").Equal(asignaciones[1].MontoAsignado))
}

func TestDistribuirIndirectosSumaExacta(t *testing.T) {
	// Three equal projects cannot split 100.00 into equal cents; the last
	// allocation absorbs the remainder.
	directos := []GastoDirectoObra{
		{ObraID: "a", Monto: dec("1000")},
		{ObraID: "b", Monto: dec("1000")},
		{ObraID: "c", Monto: dec("1000")},
	}

	pool := dec("100")
	asignaciones := DistribuirIndirectos(pool, directos)
	require.Len(t, asignaciones, 3)

	suma := decimal.Zero
	for _, a := range asignaciones {
		suma = suma.Add(a.MontoAsignado)
	}
	assert.True(t, pool.Equal(suma), "asignado %s", suma)
	assert.True(t, dec("33.34").Equal(asignaciones[2].MontoAsignado))
}

func TestDistribuirIndirectosExcluyeSinGasto(t *testing.T) {
	directos := []GastoDirectoObra{
		{ObraID: "a", Monto: dec("5000")},
		{ObraID: "b", Monto: decimal.Zero},
		{ObraID: "c", Monto: dec("-100")},
	}

	asignaciones := DistribuirIndirectos(dec("2000"), directos)
	require.Len(t, asignaciones, 1)
	assert.Equal(t, "a", asignaciones[0].ObraID)
	assert.True(t, dec("100").Equal(asignaciones[0].PorcentajeAsignado))
	assert.True(t, dec("2000").Equal(asignaciones[0].MontoAsignado))
}

func TestDistribuirIndirectosSinDirectos(t *testing.T) {
	asignaciones := DistribuirIndirectos(dec("8000"), nil)
	assert.Empty(t, asignaciones)

	asignaciones = DistribuirIndirectos(dec("8000"), []GastoDirectoObra{{ObraID: "a", Monto: decimal.Zero}})
	assert.Empty(t, asignaciones)
}

func TestDistribuirIndirectosDeterminista(t *testing.T) {
	directos := []GastoDirectoObra{
		{ObraID: "a", Monto: dec("1234.56")},
		{ObraID: "b", Monto: dec("7890.12")},
		{ObraID: "c", Monto: dec("455.55")},
	}

	primera := DistribuirIndirectos(dec("3000"), directos)
	segunda := DistribuirIndirectos(dec("3000"), directos)
	assert.Equal(t, primera, segunda)
}
