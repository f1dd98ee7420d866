package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularDistribucionGuardaYResponde(t *testing.T) {
	obraA := uuid.New()
	obraB := uuid.New()

	var guardadas []store.DistribucionGasto

	app := newTestApplication()
	app.store = store.Storage{
		Distribucion: &distribucionStub{
			totalIndirectos: func(_ context.Context, mes string) (decimal.Decimal, error) {
				return decimal.NewFromInt(10000), nil
			},
			directosPorObra: func(context.Context, string) ([]store.GastoDirectoMes, error) {
				return []store.GastoDirectoMes{
					{ObraID: obraA, ObraCodigo: "OB-001", ObraNombre: "Torre Reforma", Monto: decimal.NewFromInt(60000)},
					{ObraID: obraB, ObraCodigo: "OB-002", ObraNombre: "Plaza Norte", Monto: decimal.NewFromInt(40000)},
				}, nil
			},
			guardar: func(_ context.Context, mes string, filas []store.DistribucionGasto) error {
				guardadas = filas
				return nil
			},
		},
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/gastos-indirectos/calcular-distribucion?mes=2026-01", nil)
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got CalculoDistribucionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "2026-01", got.Mes)
	assert.True(t, got.TotalGastosIndirectos.Equal(decimal.NewFromInt(10000)))
	assert.True(t, got.TotalGastosDirectos.Equal(decimal.NewFromInt(100000)))
	require.Len(t, got.Distribucion, 2)

	assert.Equal(t, obraA, got.Distribucion[0].ObraID)
	assert.True(t, got.Distribucion[0].MontoAsignado.Equal(decimal.NewFromInt(6000)))
	assert.True(t, got.Distribucion[1].MontoAsignado.Equal(decimal.NewFromInt(4000)))

	require.Len(t, guardadas, 2)
	suma := guardadas[0].MontoAsignado.Add(guardadas[1].MontoAsignado)
	assert.True(t, suma.Equal(decimal.NewFromInt(10000)))
}

func TestCalcularDistribucionSinGastosDirectos(t *testing.T) {
	guardarLlamado := false

	app := newTestApplication()
	app.store = store.Storage{
		Distribucion: &distribucionStub{
			totalIndirectos: func(context.Context, string) (decimal.Decimal, error) {
				return decimal.NewFromInt(5000), nil
			},
			directosPorObra: func(context.Context, string) ([]store.GastoDirectoMes, error) {
				return nil, nil
			},
			guardar: func(_ context.Context, _ string, filas []store.DistribucionGasto) error {
				guardarLlamado = true
				assert.Empty(t, filas)
				return nil
			},
		},
	}

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/gastos-indirectos/calcular-distribucion?mes=2026-01", nil)
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, guardarLlamado)

	var got CalculoDistribucionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Empty(t, got.Distribucion)
}

func TestCalcularDistribucionMesInvalido(t *testing.T) {
	app := newTestApplication()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/gastos-indirectos/calcular-distribucion?mes=enero", nil)
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
