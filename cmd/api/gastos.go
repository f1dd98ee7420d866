package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/finanzas"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateGastoRequest struct {
	ObraID   *uuid.UUID      `json:"obra_id"`
	Tipo     string          `json:"tipo"`
	Concepto string          `json:"concepto"`
	Monto    decimal.Decimal `json:"monto"`
	Fecha    string          `json:"fecha"`
}

// CalculoDistribucionResponse reports one distribution run: the month's
// pools and the per-project allocation that was stored.
type CalculoDistribucionResponse struct {
	Mes                   string                    `json:"mes"`
	TotalGastosIndirectos decimal.Decimal           `json:"total_gastos_indirectos"`
	TotalGastosDirectos   decimal.Decimal           `json:"total_gastos_directos"`
	Distribucion          []store.DistribucionGasto `json:"distribucion"`
}

func (app *application) handleListGastos(w http.ResponseWriter, r *http.Request) {
	obraID, err := parseUUIDQuery(r, "obra_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "obra_id inválido")
		return
	}

	filter := store.GastoFilter{
		ObraID:     obraID,
		Tipo:       r.URL.Query().Get("tipo"),
		Mes:        r.URL.Query().Get("mes"),
		Pagination: parsePagination(r),
	}
	if filter.Mes != "" {
		if _, ok := parseMes(filter.Mes); !ok {
			writeJSONError(w, http.StatusBadRequest, "mes inválido, formato esperado YYYY-MM")
			return
		}
	}

	gastos, total, err := app.store.Gastos.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(gastos, total, filter.Page, filter.PageSize))
}

func (app *application) handleCreateGasto(w http.ResponseWriter, r *http.Request) {
	var payload CreateGastoRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.Tipo != store.GastoDirecto && payload.Tipo != store.GastoIndirecto {
		writeJSONError(w, http.StatusUnprocessableEntity, "tipo debe ser 'directo' o 'indirecto'")
		return
	}
	if !payload.Monto.IsPositive() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto debe ser mayor a cero")
		return
	}

	fecha, err := parseTime(payload.Fecha)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha inválida, formato esperado YYYY-MM-DD")
		return
	}

	gasto := &store.Gasto{
		ObraID:   payload.ObraID,
		Tipo:     payload.Tipo,
		Concepto: payload.Concepto,
		Monto:    payload.Monto,
		Fecha:    fecha,
	}

	if err := app.store.Gastos.Create(r.Context(), gasto); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gasto)
}

func (app *application) handleDeleteGasto(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Gastos.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary		Distribute indirect costs
// @Description	allocates the month's indirect-cost pool across active projects proportionally to their direct costs and stores the result
// @Tags			Gastos
// @Produce		json
// @Param			mes	query	string	true	"Month in YYYY-MM format"
// @Router			/api/v1/gastos-indirectos/calcular-distribucion [post]
func (app *application) handleCalcularDistribucion(w http.ResponseWriter, r *http.Request) {
	mes, ok := parseMes(r.URL.Query().Get("mes"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "mes inválido, formato esperado YYYY-MM")
		return
	}

	ctx := r.Context()
	totalIndirecto, err := app.store.Distribucion.TotalIndirectos(ctx, mes)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	directos, err := app.store.Distribucion.DirectosPorObra(ctx, mes)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	entrada := make([]finanzas.GastoDirectoObra, 0, len(directos))
	totalDirecto := decimal.Zero
	for _, d := range directos {
		entrada = append(entrada, finanzas.GastoDirectoObra{
			ObraID:     d.ObraID.String(),
			ObraCodigo: d.ObraCodigo,
			ObraNombre: d.ObraNombre,
			Monto:      d.Monto,
		})
		totalDirecto = totalDirecto.Add(d.Monto)
	}

	asignaciones := finanzas.DistribuirIndirectos(totalIndirecto, entrada)
	if len(asignaciones) == 0 && totalIndirecto.IsPositive() {
		app.logger.Warn("Distribucion",
			"Mes %s: $%s de gastos indirectos sin asignar, ninguna obra activa tiene gastos directos",
			mes, totalIndirecto.StringFixed(2))
	}

	filas := make([]store.DistribucionGasto, 0, len(asignaciones))
	for _, a := range asignaciones {
		obraID, err := uuid.Parse(a.ObraID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "error interno del servidor")
			return
		}
		filas = append(filas, store.DistribucionGasto{
			ObraID:             obraID,
			ObraCodigo:         a.ObraCodigo,
			ObraNombre:         a.ObraNombre,
			Mes:                mes,
			GastosDirectos:     a.GastosDirectos,
			PorcentajeAsignado: a.PorcentajeAsignado,
			MontoAsignado:      a.MontoAsignado,
			TotalObra:          a.TotalObra,
		})
	}

	if err := app.store.Distribucion.Guardar(ctx, mes, filas); err != nil {
		app.writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, CalculoDistribucionResponse{
		Mes:                   mes,
		TotalGastosIndirectos: totalIndirecto,
		TotalGastosDirectos:   totalDirecto,
		Distribucion:          filas,
	})
}

func (app *application) handleGetDistribucion(w http.ResponseWriter, r *http.Request) {
	mes, ok := parseMes(chi.URLParam(r, "mes"))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "mes inválido, formato esperado YYYY-MM")
		return
	}

	filas, err := app.store.Distribucion.PorMes(r.Context(), mes)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	totalIndirecto := decimal.Zero
	totalDirecto := decimal.Zero
	for _, f := range filas {
		totalIndirecto = totalIndirecto.Add(f.MontoAsignado)
		totalDirecto = totalDirecto.Add(f.GastosDirectos)
	}

	writeJSON(w, http.StatusOK, CalculoDistribucionResponse{
		Mes:                   mes,
		TotalGastosIndirectos: totalIndirecto,
		TotalGastosDirectos:   totalDirecto,
		Distribucion:          filas,
	})
}
