package finanzas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFechaVencimiento(t *testing.T) {
	orden := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), FechaVencimiento(orden, 30))
	assert.Equal(t, orden, FechaVencimiento(orden, 0))
}

func TestDiasRestantes(t *testing.T) {
	hoy := time.Date(2025, 3, 20, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DiasRestantes(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), hoy))
	assert.Equal(t, 5, DiasRestantes(time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC), hoy))
	assert.Equal(t, -5, DiasRestantes(time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC), hoy))
}

func TestDiasRestantesOrdenVencida(t *testing.T) {
	// Order placed 10 days ago with 5 credit days is 5 days overdue.
	hoy := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	orden := hoy.AddDate(0, 0, -10)

	restantes := DiasRestantes(FechaVencimiento(orden, 5), hoy)
	assert.Equal(t, -5, restantes)
	assert.Equal(t, UrgenciaVencido, ClasificarUrgencia(restantes))
}

func TestClasificarUrgencia(t *testing.T) {
	casos := map[int]string{
		-1: UrgenciaVencido,
		0:  UrgenciaCritico,
		7:  UrgenciaCritico,
		8:  UrgenciaUrgente,
		15: UrgenciaUrgente,
		16: UrgenciaNormal,
		90: UrgenciaNormal,
	}
	for dias, esperado := range casos {
		assert.Equal(t, esperado, ClasificarUrgencia(dias), "dias=%d", dias)
	}
}

func TestRangoUrgencia(t *testing.T) {
	assert.Less(t, RangoUrgencia(UrgenciaVencido), RangoUrgencia(UrgenciaCritico))
	assert.Less(t, RangoUrgencia(UrgenciaCritico), RangoUrgencia(UrgenciaUrgente))
	assert.Less(t, RangoUrgencia(UrgenciaUrgente), RangoUrgencia(UrgenciaNormal))
	assert.Equal(t, 4, RangoUrgencia("desconocida"))
}
