package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordenPorVencer(numero string, fechaOrden time.Time, diasCredito int) store.OrdenPorVencer {
	return store.OrdenPorVencer{
		OrdenCompraID:  uuid.New(),
		NumeroOrden:    numero,
		ObraCodigo:     "OB-001",
		ObraNombre:     "Torre Reforma",
		Proveedor:      "Cementos Rivera",
		FechaOrden:     fechaOrden,
		DiasCredito:    diasCredito,
		TotalOrden:     decimal.NewFromInt(10000),
		MontoPagado:    decimal.Zero,
		MontoPendiente: decimal.NewFromInt(10000),
	}
}

func TestAlertasVencimientosOrdenYClasificacion(t *testing.T) {
	hoy := time.Now()
	app := newTestApplication()
	app.store = store.Storage{
		Alertas: &alertasStub{
			ordenesPorVencer: func(context.Context) ([]store.OrdenPorVencer, error) {
				return []store.OrdenPorVencer{
					// 30 days out, normal
					ordenPorVencer("OC-2026-001", hoy, 30),
					// overdue by 5 days
					ordenPorVencer("OC-2026-002", hoy.AddDate(0, 0, -10), 5),
					// due in 5 days, critico
					ordenPorVencer("OC-2026-003", hoy.AddDate(0, 0, -25), 30),
					// due in 12 days, urgente
					ordenPorVencer("OC-2026-004", hoy.AddDate(0, 0, -18), 30),
				}, nil
			},
		},
	}

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/alertas/vencimientos-credito", nil)
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got response.APIResponse[[]AlertaVencimiento]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Data, 4)

	assert.Equal(t, "OC-2026-002", got.Data[0].NumeroOrden)
	assert.Equal(t, "vencido", got.Data[0].Urgencia)
	assert.Equal(t, -5, got.Data[0].DiasRestantes)

	assert.Equal(t, "OC-2026-003", got.Data[1].NumeroOrden)
	assert.Equal(t, "critico", got.Data[1].Urgencia)

	assert.Equal(t, "OC-2026-004", got.Data[2].NumeroOrden)
	assert.Equal(t, "urgente", got.Data[2].Urgencia)

	assert.Equal(t, "OC-2026-001", got.Data[3].NumeroOrden)
	assert.Equal(t, "normal", got.Data[3].Urgencia)
}

func TestAlertasVencimientosSinOrdenes(t *testing.T) {
	app := newTestApplication()
	app.store = store.Storage{
		Alertas: &alertasStub{
			ordenesPorVencer: func(context.Context) ([]store.OrdenPorVencer, error) {
				return nil, nil
			},
		},
	}

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/alertas/vencimientos-credito", nil)
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got response.APIResponse[[]AlertaVencimiento]
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Empty(t, got.Data)
}
