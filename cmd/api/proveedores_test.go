package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creditStubs(limite, usado decimal.Decimal) (*proveedoresStub, uuid.UUID) {
	id := uuid.New()
	stub := &proveedoresStub{
		getByID: func(_ context.Context, got uuid.UUID) (*store.Proveedor, error) {
			if got != id {
				return nil, store.ErrNotFound
			}
			return &store.Proveedor{
				ID:            id,
				RazonSocial:   "Aceros del Norte SA",
				CreditoDias:   30,
				LimiteCredito: limite,
			}, nil
		},
		creditoUsado: func(context.Context, uuid.UUID) (decimal.Decimal, error) {
			return usado, nil
		},
	}
	return stub, id
}

func TestValidarLineaCreditoAprobado(t *testing.T) {
	app := newTestApplication()
	stub, id := creditStubs(decimal.NewFromInt(50000), decimal.NewFromInt(20000))
	app.store = store.Storage{Proveedores: stub}

	body := fmt.Sprintf(`{"proveedor_id":%q,"monto":25000}`, id)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/proveedores/validar-linea-credito", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got ValidacionLineaCredito
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.Aprobado)
	assert.True(t, got.LineaCreditoDisponible.Equal(decimal.NewFromInt(30000)))
	assert.True(t, got.DisponibleDespuesCompra.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, "Aceros del Norte SA", got.ProveedorNombre)
}

func TestValidarLineaCreditoRechazado(t *testing.T) {
	app := newTestApplication()
	stub, id := creditStubs(decimal.NewFromInt(50000), decimal.NewFromInt(20000))
	app.store = store.Storage{Proveedores: stub}

	body := fmt.Sprintf(`{"proveedor_id":%q,"monto":40000}`, id)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/proveedores/validar-linea-credito", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got ValidacionLineaCredito
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.False(t, got.Aprobado)
	assert.True(t, got.DisponibleDespuesCompra.Equal(decimal.NewFromInt(-10000)))
	assert.NotEmpty(t, got.Mensaje)
}

func TestValidarLineaCreditoProveedorInexistente(t *testing.T) {
	app := newTestApplication()
	stub, _ := creditStubs(decimal.NewFromInt(50000), decimal.Zero)
	app.store = store.Storage{Proveedores: stub}

	body := fmt.Sprintf(`{"proveedor_id":%q,"monto":100}`, uuid.New())
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/proveedores/validar-linea-credito", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidarLineaCreditoMontoNegativo(t *testing.T) {
	app := newTestApplication()
	stub, id := creditStubs(decimal.NewFromInt(50000), decimal.Zero)
	app.store = store.Storage{Proveedores: stub}

	body := fmt.Sprintf(`{"proveedor_id":%q,"monto":-1}`, id)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/proveedores/validar-linea-credito", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
