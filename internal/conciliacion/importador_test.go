package conciliacion

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizarDescripcion(t *testing.T) {
	assert.Equal(t, "pago transf oc-2025-003", NormalizarDescripcion("PAGO TRANSF OC-2025-003   "))
	assert.Equal(t, "spei recibido banorte", NormalizarDescripcion("  SPEI   Recibido\tBANORTE"))
	assert.Equal(t, "", NormalizarDescripcion("   "))
}

func TestLeerEstadoCuenta(t *testing.T) {
	csv := strings.Join([]string{
		"fecha;descripcion;monto;referencia",
		"15/03/2025;PAGO TRANSF OC-2025-003   ;12500.50;REF001",
		"2025-03-16;SPEI ENVIADO;1,234.56;REF002",
	}, "\n")

	resultado, err := LeerEstadoCuenta(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, resultado.Movimientos, 2)
	assert.Zero(t, resultado.Omitidas)

	primero := resultado.Movimientos[0]
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), primero.Fecha)
	assert.Equal(t, "pago transf oc-2025-003", primero.DescripcionNormalizada)
	assert.True(t, decimal.RequireFromString("12500.50").Equal(primero.Monto))
	assert.Equal(t, "REF001", primero.Referencia)

	assert.True(t, decimal.RequireFromString("1234.56").Equal(resultado.Movimientos[1].Monto))
}

func TestLeerEstadoCuentaOmiteFilasInvalidas(t *testing.T) {
	csv := strings.Join([]string{
		"fecha;descripcion;monto",
		"no-es-fecha;ABONO;100.00",
		"15/03/2025;CARGO;no-es-monto",
		"15/03/2025;ABONO VALIDO;250.00",
	}, "\n")

	resultado, err := LeerEstadoCuenta(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, resultado.Movimientos, 1)
	assert.Equal(t, 2, resultado.Omitidas)
	assert.Equal(t, "abono valido", resultado.Movimientos[0].DescripcionNormalizada)
}

func TestParseMonto(t *testing.T) {
	casos := map[string]string{
		"12500.50":     "12500.50",
		"$1,234.56":    "1234.56",
		"1.234,56":     "1234.56",
		"-500":         "-500",
		" $ 2 500.00 ": "2500.00",
	}
	for entrada, esperado := range casos {
		monto, ok := ParseMonto(entrada)
		require.True(t, ok, "entrada %q", entrada)
		assert.True(t, decimal.RequireFromString(esperado).Equal(monto), "entrada %q dio %s", entrada, monto)
	}

	_, ok := ParseMonto("")
	assert.False(t, ok)
	_, ok = ParseMonto("abc")
	assert.False(t, ok)
}

func TestParseFecha(t *testing.T) {
	fecha, ok := ParseFecha("01/02/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), fecha)

	_, ok = ParseFecha("")
	assert.False(t, ok)
	_, ok = ParseFecha("31/02/2025")
	assert.False(t, ok)
}
