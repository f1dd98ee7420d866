package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/finanzas"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

type CreateDestajoRequest struct {
	ObraID             uuid.UUID       `json:"obra_id"`
	Destajista         string          `json:"destajista"`
	DestajistaRFC      *string         `json:"destajista_rfc"`
	DestajistaTelefono *string         `json:"destajista_telefono"`
	Concepto           string          `json:"concepto"`
	Categoria          *string         `json:"categoria"`
	Semana             *string         `json:"semana"`
	FechaInicio        *string         `json:"fecha_inicio"`
	FechaFin           *string         `json:"fecha_fin"`
	Cantidad           decimal.Decimal `json:"cantidad"`
	Unidad             string          `json:"unidad"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"`
	Estado             string          `json:"estado"`
	Observaciones      *string         `json:"observaciones"`
	Metadata           types.JSONText  `json:"metadata"`
}

func (app *application) handleListDestajos(w http.ResponseWriter, r *http.Request) {
	obraID, err := parseUUIDQuery(r, "obra_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "obra_id inválido")
		return
	}

	filter := store.DestajoFilter{
		ObraID:     obraID,
		Estado:     r.URL.Query().Get("estado"),
		Pagination: parsePagination(r),
	}

	destajos, total, err := app.store.Destajos.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(destajos, total, filter.Page, filter.PageSize))
}

func (app *application) handleCreateDestajo(w http.ResponseWriter, r *http.Request) {
	var payload CreateDestajoRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.Destajista == "" || payload.Concepto == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "destajista y concepto son obligatorios")
		return
	}
	if !payload.Cantidad.IsPositive() || payload.PrecioUnitario.IsNegative() {
		writeJSONError(w, http.StatusUnprocessableEntity, "cantidad debe ser positiva y precio_unitario no negativo")
		return
	}

	ctx := r.Context()
	if _, err := app.store.Obras.GetByID(ctx, payload.ObraID); err != nil {
		app.writeStoreError(w, err)
		return
	}

	estado := payload.Estado
	if estado == "" {
		estado = "pendiente"
	}

	destajo := &store.Destajo{
		ObraID:             payload.ObraID,
		Destajista:         payload.Destajista,
		DestajistaRFC:      payload.DestajistaRFC,
		DestajistaTelefono: payload.DestajistaTelefono,
		Concepto:           payload.Concepto,
		Categoria:          payload.Categoria,
		Semana:             payload.Semana,
		Cantidad:           payload.Cantidad,
		Unidad:             payload.Unidad,
		PrecioUnitario:     payload.PrecioUnitario,
		Total:              finanzas.TotalItem(payload.Cantidad, payload.PrecioUnitario),
		Estado:             estado,
		Observaciones:      payload.Observaciones,
		Metadata:           payload.Metadata,
	}

	if payload.FechaInicio != nil {
		inicio, err := parseTime(*payload.FechaInicio)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "fecha_inicio inválida, formato esperado YYYY-MM-DD")
			return
		}
		destajo.FechaInicio = &inicio
	}
	if payload.FechaFin != nil {
		fin, err := parseTime(*payload.FechaFin)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "fecha_fin inválida, formato esperado YYYY-MM-DD")
			return
		}
		destajo.FechaFin = &fin
	}

	if err := app.store.Destajos.Create(ctx, destajo); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, destajo)
}
