package main

import (
	"net/http"

	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateObraRequest struct {
	Codigo             string          `json:"codigo"`
	Nombre             string          `json:"nombre"`
	NumeroContrato     string          `json:"numero_contrato"`
	Cliente            string          `json:"cliente"`
	Residente          string          `json:"residente"`
	Direccion          *string         `json:"direccion"`
	MontoContratado    decimal.Decimal `json:"monto_contratado"`
	FechaInicio        string          `json:"fecha_inicio"`
	FechaFinProgramada string          `json:"fecha_fin_programada"`
	PlazoEjecucion     int             `json:"plazo_ejecucion"`
	Estado             string          `json:"estado"`
}

// @Summary		List obras
// @Tags			Obras
// @Produce		json
// @Router			/api/v1/obras [get]
func (app *application) handleListObras(w http.ResponseWriter, r *http.Request) {
	filter := store.ObraFilter{
		Estado:     r.URL.Query().Get("estado"),
		Pagination: parsePagination(r),
	}

	obras, total, err := app.store.Obras.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.NewPaginated(obras, total, filter.Page, filter.PageSize))
}

func (app *application) handleGetObra(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	obra, err := app.store.Obras.GetByID(r.Context(), id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obra)
}

// @Summary		Create obra
// @Tags			Obras
// @Accept			json
// @Produce		json
// @Router			/api/v1/obras [post]
func (app *application) handleCreateObra(w http.ResponseWriter, r *http.Request) {
	var payload CreateObraRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.Codigo == "" || payload.Nombre == "" || payload.NumeroContrato == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "codigo, nombre y numero_contrato son obligatorios")
		return
	}
	if payload.MontoContratado.IsNegative() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto_contratado no puede ser negativo")
		return
	}

	inicio, err := parseTime(payload.FechaInicio)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha_inicio inválida, formato esperado YYYY-MM-DD")
		return
	}
	fin, err := parseTime(payload.FechaFinProgramada)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha_fin_programada inválida, formato esperado YYYY-MM-DD")
		return
	}

	estado := payload.Estado
	if estado == "" {
		estado = "activa"
	}

	obra := &store.Obra{
		Codigo:             payload.Codigo,
		Nombre:             payload.Nombre,
		NumeroContrato:     payload.NumeroContrato,
		Cliente:            payload.Cliente,
		Residente:          payload.Residente,
		Direccion:          payload.Direccion,
		MontoContratado:    payload.MontoContratado,
		FechaInicio:        inicio,
		FechaFinProgramada: fin,
		PlazoEjecucion:     payload.PlazoEjecucion,
		Estado:             estado,
	}

	if err := app.store.Obras.Create(r.Context(), obra); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, obra)
}

func (app *application) handleUpdateObra(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var patch store.ObraPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if patch.MontoContratado != nil && patch.MontoContratado.IsNegative() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto_contratado no puede ser negativo")
		return
	}

	obra, err := app.store.Obras.Update(r.Context(), id, patch)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, obra)
}

func (app *application) handleDeleteObra(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Obras.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
