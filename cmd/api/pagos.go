package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreatePagoRequest struct {
	OrdenCompraID   uuid.UUID       `json:"orden_compra_id"`
	Monto           decimal.Decimal `json:"monto"`
	MetodoPago      *string         `json:"metodo_pago"`
	FechaProgramada string          `json:"fecha_programada"`
	Estado          string          `json:"estado"`
	Referencia      *string         `json:"referencia"`
	Comprobante     *string         `json:"comprobante"`
	Observaciones   *string         `json:"observaciones"`
}

type ProcesarPagoRequest struct {
	ProcesadoPor string `json:"procesado_por"`
}

func (app *application) handleListPagos(w http.ResponseWriter, r *http.Request) {
	ordenID, err := parseUUIDQuery(r, "orden_compra_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "orden_compra_id inválido")
		return
	}

	filter := store.PagoFilter{
		OrdenCompraID: ordenID,
		Estado:        r.URL.Query().Get("estado"),
		Pagination:    parsePagination(r),
	}

	pagos, total, err := app.store.Pagos.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(pagos, total, filter.Page, filter.PageSize))
}

func (app *application) handleGetPago(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	pago, err := app.store.Pagos.GetByID(r.Context(), id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pago)
}

// @Summary		Create payment
// @Description	schedules a payment against a purchase order; the amount may not exceed the order's outstanding balance
// @Tags			Pagos
// @Accept			json
// @Produce		json
// @Router			/api/v1/pagos [post]
func (app *application) handleCreatePago(w http.ResponseWriter, r *http.Request) {
	var payload CreatePagoRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if !payload.Monto.IsPositive() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto debe ser mayor a cero")
		return
	}

	fechaProgramada, err := parseTime(payload.FechaProgramada)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha_programada inválida, formato esperado YYYY-MM-DD")
		return
	}

	estado := payload.Estado
	if estado == "" {
		estado = store.PagoProgramado
	}

	ctx := r.Context()
	orden, err := app.store.Ordenes.GetByID(ctx, payload.OrdenCompraID)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	numero, err := app.store.Pagos.SiguienteNumero(ctx, time.Now().Year())
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	pago := &store.Pago{
		NumeroPago:      numero,
		ObraID:          orden.ObraID,
		ProveedorID:     orden.ProveedorID,
		OrdenCompraID:   orden.ID,
		Monto:           payload.Monto,
		MetodoPago:      payload.MetodoPago,
		FechaProgramada: fechaProgramada,
		Estado:          estado,
		Referencia:      payload.Referencia,
		Comprobante:     payload.Comprobante,
		Observaciones:   payload.Observaciones,
	}
	if estado == store.PagoCompletado {
		ahora := time.Now()
		pago.FechaProcesado = &ahora
	}

	if err := app.store.Pagos.Create(ctx, pago); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pago)
}

func (app *application) handleUpdatePago(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var patch store.PagoPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if patch.Monto != nil && !patch.Monto.IsPositive() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto debe ser mayor a cero")
		return
	}

	pago, err := app.store.Pagos.Update(r.Context(), id, patch)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pago)
}

// @Summary		Process payment
// @Description	marks a scheduled payment as completed and applies it to the order balance
// @Tags			Pagos
// @Produce		json
// @Router			/api/v1/pagos/{id}/procesar [post]
func (app *application) handleProcesarPago(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var payload ProcesarPagoRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	pago, err := app.store.Pagos.Procesar(r.Context(), id, payload.ProcesadoPor)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pago)
}

func (app *application) handleDeletePago(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Pagos.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
