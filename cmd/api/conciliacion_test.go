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

func TestMatchBankTransaction(t *testing.T) {
	txID := uuid.New()
	ordenID := uuid.New()

	var gotConfidence int
	var gotManual bool

	app := newTestApplication()
	app.store = store.Storage{
		Ordenes: &ordenesStub{
			getByID: func(_ context.Context, got uuid.UUID) (*store.OrdenCompra, error) {
				if got != ordenID {
					return nil, store.ErrNotFound
				}
				return &store.OrdenCompra{ID: ordenID, NumeroOrden: "OC-2026-003"}, nil
			},
		},
		BankTransactions: &bankTransactionsStub{
			match: func(_ context.Context, id, oid uuid.UUID, confidence int, manual bool) (*store.BankTransaction, error) {
				if id != txID {
					return nil, store.ErrNotFound
				}
				gotConfidence = confidence
				gotManual = manual
				return &store.BankTransaction{
					ID:              txID,
					OrdenCompraID:   &oid,
					Matched:         true,
					MatchConfidence: confidence,
					MatchManual:     manual,
				}, nil
			},
		},
	}

	body := fmt.Sprintf(`{"orden_compra_id":%q,"confidence":85,"manual":true}`, ordenID)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/bank-transactions/"+txID.String()+"/match", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 85, gotConfidence)
	assert.True(t, gotManual)

	var got store.BankTransaction
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.NotNil(t, got.OrdenCompraID)
	assert.Equal(t, ordenID, *got.OrdenCompraID)
}

func TestMatchBankTransactionOrdenInexistente(t *testing.T) {
	app := newTestApplication()
	app.store = store.Storage{
		Ordenes: &ordenesStub{
			getByID: func(context.Context, uuid.UUID) (*store.OrdenCompra, error) {
				return nil, store.ErrNotFound
			},
		},
	}

	body := fmt.Sprintf(`{"orden_compra_id":%q,"confidence":50}`, uuid.New())
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/bank-transactions/"+uuid.NewString()+"/match", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMatchBankTransactionInexistente(t *testing.T) {
	ordenID := uuid.New()

	app := newTestApplication()
	app.store = store.Storage{
		Ordenes: &ordenesStub{
			getByID: func(context.Context, uuid.UUID) (*store.OrdenCompra, error) {
				return &store.OrdenCompra{ID: ordenID}, nil
			},
		},
		BankTransactions: &bankTransactionsStub{
			match: func(context.Context, uuid.UUID, uuid.UUID, int, bool) (*store.BankTransaction, error) {
				return nil, store.ErrNotFound
			},
		},
	}

	body := fmt.Sprintf(`{"orden_compra_id":%q,"confidence":50}`, ordenID)
	req, _ := http.NewRequest(http.MethodPut, "/api/v1/bank-transactions/"+uuid.NewString()+"/match", bytes.NewBufferString(body))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestImportBankTransactions(t *testing.T) {
	var imported []store.BankTransaction

	app := newTestApplication()
	app.store = store.Storage{
		BankTransactions: &bankTransactionsStub{
			importBatch: func(_ context.Context, txs []store.BankTransaction) (int, error) {
				imported = txs
				return len(txs), nil
			},
		},
	}

	csv := "fecha;descripcion;monto;referencia\n" +
		"15/01/2026;PAGO TRANSF   OC-2026-003;-12500,50;REF001\n" +
		"sin fecha;basura;;\n" +
		"16/01/2026;DEPOSITO CLIENTE;30000.00;REF002\n"

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/bank-transactions/import", bytes.NewBufferString(csv))
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got ImportBankTransactionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 2, got.Insertadas)
	assert.Equal(t, 1, got.Omitidas)

	require.Len(t, imported, 2)
	assert.Equal(t, "pago transf oc-2026-003", imported[0].DescripcionBancoNormalizada)
	assert.True(t, imported[0].Monto.Equal(decimal.RequireFromString("-12500.5")))
	assert.Equal(t, fechaUTC(2026, time.January, 15), imported[0].Fecha)
	assert.Equal(t, "csv", imported[0].Origen)
}

func TestImportBankTransactionsJSON(t *testing.T) {
	var imported []store.BankTransaction

	app := newTestApplication()
	app.store = store.Storage{
		BankTransactions: &bankTransactionsStub{
			importBatch: func(_ context.Context, txs []store.BankTransaction) (int, error) {
				imported = txs
				return len(txs), nil
			},
		},
	}

	body := `[
		{"fecha":"2026-01-15","descripcion_banco":"PAGO   TRANSF OC-2026-003","monto":-12500.5,"referencia_bancaria":"REF001"},
		{"fecha":"no es fecha","descripcion_banco":"BASURA","monto":0}
	]`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/bank-transactions/import", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := executeRequest(app, req)

	require.Equal(t, http.StatusCreated, rr.Code)

	var got ImportBankTransactionsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Insertadas)
	assert.Equal(t, 1, got.Omitidas)

	require.Len(t, imported, 1)
	assert.Equal(t, "pago transf oc-2026-003", imported[0].DescripcionBancoNormalizada)
	assert.Equal(t, "json", imported[0].Origen)
}
