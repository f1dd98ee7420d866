package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ordenCreateFixture() (store.Storage, uuid.UUID, uuid.UUID) {
	obraID := uuid.New()
	proveedorID := uuid.New()

	storage := store.Storage{
		Obras: &obrasStub{
			getByID: func(_ context.Context, got uuid.UUID) (*store.Obra, error) {
				if got != obraID {
					return nil, store.ErrNotFound
				}
				return &store.Obra{ID: obraID, Codigo: "OB-001"}, nil
			},
		},
		Proveedores: &proveedoresStub{
			getByID: func(_ context.Context, got uuid.UUID) (*store.Proveedor, error) {
				if got != proveedorID {
					return nil, store.ErrNotFound
				}
				return &store.Proveedor{ID: proveedorID, RazonSocial: "Cementos Rivera"}, nil
			},
		},
		Ordenes: &ordenesStub{
			siguienteNumero: func(_ context.Context, year int) (string, error) {
				return fmt.Sprintf("OC-%d-001", year), nil
			},
			create: func(_ context.Context, orden *store.OrdenCompra) error {
				orden.ID = uuid.New()
				orden.FechaEmision = time.Now()
				return nil
			},
		},
	}
	return storage, obraID, proveedorID
}

func TestCreateOrdenCalculaTotales(t *testing.T) {
	app := newTestApplication()
	storage, obraID, proveedorID := ordenCreateFixture()
	app.store = storage

	body := fmt.Sprintf(`{
		"obra_id": %q,
		"proveedor_id": %q,
		"fecha_entrega": "2026-09-15",
		"descuento": 10,
		"items": [
			{"cantidad": 10, "unidad": "pza", "descripcion": "Varilla 3/8", "precio_unitario": 100}
		]
	}`, obraID, proveedorID)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ordenes-compra", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got store.OrdenCompra
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))

	assert.Equal(t, fmt.Sprintf("OC-%d-001", time.Now().Year()), got.NumeroOrden)
	assert.Equal(t, "borrador", got.Estado)
	assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(1000)), "subtotal %s", got.Subtotal)
	assert.True(t, got.DescuentoMonto.Equal(decimal.NewFromInt(100)), "descuento %s", got.DescuentoMonto)
	assert.True(t, got.IVA.Equal(decimal.NewFromInt(144)), "iva %s", got.IVA)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1044)), "total %s", got.Total)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Total.Equal(decimal.NewFromInt(1000)))
}

func TestCreateOrdenSinIVA(t *testing.T) {
	app := newTestApplication()
	storage, obraID, proveedorID := ordenCreateFixture()
	app.store = storage

	body := fmt.Sprintf(`{
		"obra_id": %q,
		"proveedor_id": %q,
		"fecha_entrega": "2026-09-15",
		"descuento": 0,
		"tiene_iva": false,
		"items": [
			{"cantidad": 2, "unidad": "ton", "descripcion": "Cemento gris", "precio_unitario": 2500}
		]
	}`, obraID, proveedorID)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ordenes-compra", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got store.OrdenCompra
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.True(t, got.IVA.IsZero())
	assert.True(t, got.Total.Equal(decimal.NewFromInt(5000)))
}

func TestCreateOrdenSinItems(t *testing.T) {
	app := newTestApplication()
	storage, obraID, proveedorID := ordenCreateFixture()
	app.store = storage

	body := fmt.Sprintf(`{"obra_id": %q, "proveedor_id": %q, "fecha_entrega": "2026-09-15", "items": []}`, obraID, proveedorID)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ordenes-compra", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestCreateOrdenObraInexistente(t *testing.T) {
	app := newTestApplication()
	storage, _, proveedorID := ordenCreateFixture()
	app.store = storage

	body := fmt.Sprintf(`{
		"obra_id": %q,
		"proveedor_id": %q,
		"fecha_entrega": "2026-09-15",
		"items": [{"cantidad": 1, "unidad": "pza", "descripcion": "Clavos", "precio_unitario": 50}]
	}`, uuid.New(), proveedorID)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ordenes-compra", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateOrdenDescuentoInvalido(t *testing.T) {
	app := newTestApplication()
	storage, obraID, proveedorID := ordenCreateFixture()
	app.store = storage

	body := fmt.Sprintf(`{
		"obra_id": %q,
		"proveedor_id": %q,
		"fecha_entrega": "2026-09-15",
		"descuento": 150,
		"items": [{"cantidad": 1, "unidad": "pza", "descripcion": "Clavos", "precio_unitario": 50}]
	}`, obraID, proveedorID)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/ordenes-compra", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
