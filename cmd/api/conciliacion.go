package main

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/conciliacion"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateBankTransactionRequest struct {
	Fecha              string          `json:"fecha"`
	DescripcionBanco   string          `json:"descripcion_banco"`
	Monto              decimal.Decimal `json:"monto"`
	ReferenciaBancaria *string         `json:"referencia_bancaria"`
}

type MatchBankTransactionRequest struct {
	OrdenCompraID uuid.UUID `json:"orden_compra_id"`
	Confidence    int       `json:"confidence"`
	Manual        bool      `json:"manual"`
}

type ImportBankTransactionsResponse struct {
	Insertadas int `json:"insertadas"`
	Omitidas   int `json:"omitidas"`
}

func (app *application) handleListBankTransactions(w http.ResponseWriter, r *http.Request) {
	filter := store.BankTransactionFilter{Pagination: parsePagination(r)}
	switch r.URL.Query().Get("matched") {
	case "true":
		matched := true
		filter.Matched = &matched
	case "false":
		matched := false
		filter.Matched = &matched
	}

	txs, total, err := app.store.BankTransactions.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(txs, total, filter.Page, filter.PageSize))
}

func (app *application) handleCreateBankTransaction(w http.ResponseWriter, r *http.Request) {
	var payload CreateBankTransactionRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.DescripcionBanco == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "descripcion_banco es obligatoria")
		return
	}

	fecha, err := parseTime(payload.Fecha)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha inválida, formato esperado YYYY-MM-DD")
		return
	}

	tx := &store.BankTransaction{
		Fecha:                       fecha,
		DescripcionBanco:            payload.DescripcionBanco,
		DescripcionBancoNormalizada: conciliacion.NormalizarDescripcion(payload.DescripcionBanco),
		Monto:                       payload.Monto,
		ReferenciaBancaria:          payload.ReferenciaBancaria,
		Origen:                      "manual",
	}

	if err := app.store.BankTransactions.Create(r.Context(), tx); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// @Summary		Import bank statement
// @Description	parses a semicolon-delimited CSV statement export, or a JSON array of transactions, and stores its lines
// @Tags			BankTransactions
// @Accept			plain
// @Produce		json
// @Router			/api/v1/bank-transactions/import [post]
func (app *application) handleImportBankTransactions(w http.ResponseWriter, r *http.Request) {
	var txs []store.BankTransaction
	var omitidas int

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var payload []CreateBankTransactionRequest
		if err := readJSON(w, r, &payload); err != nil {
			writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
			return
		}
		for _, item := range payload {
			fecha, err := parseTime(item.Fecha)
			if err != nil || item.DescripcionBanco == "" {
				omitidas++
				continue
			}
			txs = append(txs, store.BankTransaction{
				Fecha:                       fecha,
				DescripcionBanco:            item.DescripcionBanco,
				DescripcionBancoNormalizada: conciliacion.NormalizarDescripcion(item.DescripcionBanco),
				Monto:                       item.Monto,
				ReferenciaBancaria:          item.ReferenciaBancaria,
				Origen:                      "json",
			})
		}
	} else {
		resultado, err := conciliacion.LeerEstadoCuenta(r.Body)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		omitidas = resultado.Omitidas

		for _, m := range resultado.Movimientos {
			var referencia *string
			if m.Referencia != "" {
				ref := m.Referencia
				referencia = &ref
			}
			txs = append(txs, store.BankTransaction{
				Fecha:                       m.Fecha,
				DescripcionBanco:            m.Descripcion,
				DescripcionBancoNormalizada: m.DescripcionNormalizada,
				Monto:                       m.Monto,
				ReferenciaBancaria:          referencia,
				Origen:                      "csv",
			})
		}
	}

	insertadas, err := app.store.BankTransactions.ImportBatch(r.Context(), txs)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	app.logger.Info("Conciliacion", "Estado de cuenta importado: %d insertadas, %d omitidas",
		insertadas, omitidas)
	writeJSON(w, http.StatusCreated, ImportBankTransactionsResponse{
		Insertadas: insertadas,
		Omitidas:   omitidas,
	})
}

// @Summary		Match bank transaction
// @Description	links a statement line to a purchase order; the latest call wins
// @Tags			BankTransactions
// @Accept			json
// @Produce		json
// @Router			/api/v1/bank-transactions/{id}/match [put]
func (app *application) handleMatchBankTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var payload MatchBankTransactionRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	ctx := r.Context()
	if _, err := app.store.Ordenes.GetByID(ctx, payload.OrdenCompraID); err != nil {
		app.writeStoreError(w, err)
		return
	}

	tx, err := app.store.BankTransactions.Match(ctx, id, payload.OrdenCompraID, payload.Confidence, payload.Manual)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tx)
}
