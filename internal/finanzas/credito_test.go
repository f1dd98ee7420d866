package finanzas

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluarCreditoAprobado(t *testing.T) {
	res := EvaluarCredito(dec("50000"), dec("20000"), dec("25000"))

	assert.True(t, res.Aprobado)
	assert.True(t, dec("30000").Equal(res.Disponible))
	assert.True(t, dec("5000").Equal(res.DisponibleDespues))
	assert.Contains(t, res.Mensaje, "aprobada")
	assert.Contains(t, res.Mensaje, "5000.00")
}

func TestEvaluarCreditoRechazado(t *testing.T) {
	res := EvaluarCredito(dec("50000"), dec("20000"), dec("40000"))

	assert.False(t, res.Aprobado)
	assert.True(t, dec("30000").Equal(res.Disponible))
	assert.True(t, dec("-10000").Equal(res.DisponibleDespues))
	assert.Contains(t, res.Mensaje, "rechazada")
	assert.Contains(t, res.Mensaje, "10000.00")
}

func TestEvaluarCreditoExacto(t *testing.T) {
	// Spending the exact remaining credit is still approved.
	res := EvaluarCredito(dec("50000"), dec("20000"), dec("30000"))

	assert.True(t, res.Aprobado)
	assert.True(t, res.DisponibleDespues.IsZero())
}

func TestEvaluarCreditoSobregirado(t *testing.T) {
	// A supplier already past its limit rejects any positive amount.
	res := EvaluarCredito(dec("10000"), dec("12000"), dec("1"))

	assert.False(t, res.Aprobado)
	assert.True(t, dec("-2000").Equal(res.Disponible))
}
