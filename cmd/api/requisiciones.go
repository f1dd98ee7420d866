package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateRequisicionItem struct {
	Cantidad    decimal.Decimal `json:"cantidad"`
	Unidad      string          `json:"unidad"`
	Descripcion string          `json:"descripcion"`
}

type CreateRequisicionRequest struct {
	ObraID        uuid.UUID               `json:"obra_id"`
	SolicitadoPor string                  `json:"solicitado_por"`
	Urgencia      string                  `json:"urgencia"`
	Observaciones *string                 `json:"observaciones"`
	Items         []CreateRequisicionItem `json:"items"`
}

func (app *application) handleListRequisiciones(w http.ResponseWriter, r *http.Request) {
	obraID, err := parseUUIDQuery(r, "obra_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "obra_id inválido")
		return
	}

	filter := store.RequisicionFilter{
		ObraID:     obraID,
		Estado:     r.URL.Query().Get("estado"),
		Pagination: parsePagination(r),
	}

	requisiciones, total, err := app.store.Requisiciones.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(requisiciones, total, filter.Page, filter.PageSize))
}

func (app *application) handleGetRequisicion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	requisicion, err := app.store.Requisiciones.GetByID(r.Context(), id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requisicion)
}

// @Summary		Create requisicion
// @Description	creates a material requisition with its item list
// @Tags			Requisiciones
// @Accept			json
// @Produce		json
// @Router			/api/v1/requisiciones [post]
func (app *application) handleCreateRequisicion(w http.ResponseWriter, r *http.Request) {
	var payload CreateRequisicionRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.SolicitadoPor == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "solicitado_por es obligatorio")
		return
	}
	if len(payload.Items) == 0 {
		writeJSONError(w, http.StatusUnprocessableEntity, "la requisición requiere al menos un item")
		return
	}
	for _, item := range payload.Items {
		if !item.Cantidad.IsPositive() {
			writeJSONError(w, http.StatusUnprocessableEntity, "la cantidad de cada item debe ser mayor a cero")
			return
		}
	}

	ctx := r.Context()
	if _, err := app.store.Obras.GetByID(ctx, payload.ObraID); err != nil {
		app.writeStoreError(w, err)
		return
	}

	numero, err := app.store.Requisiciones.SiguienteNumero(ctx, time.Now().Year())
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	urgencia := payload.Urgencia
	if urgencia == "" {
		urgencia = "normal"
	}

	requisicion := &store.Requisicion{
		NumeroRequisicion: numero,
		ObraID:            payload.ObraID,
		SolicitadoPor:     payload.SolicitadoPor,
		Urgencia:          urgencia,
		Estado:            "pendiente",
		Observaciones:     payload.Observaciones,
	}
	for _, item := range payload.Items {
		requisicion.Items = append(requisicion.Items, store.RequisicionItem{
			Cantidad:    item.Cantidad,
			Unidad:      item.Unidad,
			Descripcion: item.Descripcion,
		})
	}

	if err := app.store.Requisiciones.Create(ctx, requisicion); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, requisicion)
}

func (app *application) handleUpdateRequisicion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var patch store.RequisicionPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if patch.Estado != nil && *patch.Estado == "rechazada" && patch.MotivoRechazo == nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "rechazar una requisición requiere motivo_rechazo")
		return
	}

	requisicion, err := app.store.Requisiciones.Update(r.Context(), id, patch)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requisicion)
}

// @Summary		Approve requisition
// @Description	marks a requisition as approved and stamps who approved it
// @Tags			Requisiciones
// @Accept			json
// @Produce		json
// @Router			/api/v1/requisiciones/{id}/aprobar [put]
func (app *application) handleAprobarRequisicion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var payload struct {
		AprobadoPor string `json:"aprobado_por"`
	}
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.AprobadoPor == "" {
		payload.AprobadoPor = "Sistema"
	}

	estado := "aprobada"
	requisicion, err := app.store.Requisiciones.Update(r.Context(), id, store.RequisicionPatch{
		Estado:      &estado,
		AprobadoPor: &payload.AprobadoPor,
	})
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requisicion)
}

func (app *application) handleDeleteRequisicion(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Requisiciones.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
