package main

import (
	"net/http"
	"time"
)

// @Summary		Global dashboard statistics
// @Tags			Dashboard
// @Produce		json
// @Router			/api/v1/dashboard/estadisticas [get]
func (app *application) handleEstadisticas(w http.ResponseWriter, r *http.Request) {
	stats, err := app.store.Reportes.Estadisticas(r.Context())
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// @Summary		Project financial report
// @Description	aggregates orders, piecework, payments and the cost ledger for one project over a period
// @Tags			Reportes
// @Produce		json
// @Router			/api/v1/reportes/obra-financiero/{id} [get]
func (app *application) handleReporteObraFinanciero(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	inicio, err := parseTime(parseDateOrDefault(r.URL.Query().Get("fecha_inicio"), "2000-01-01"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "fecha_inicio inválida, formato esperado YYYY-MM-DD")
		return
	}
	fin, err := parseTime(parseDateOrDefault(r.URL.Query().Get("fecha_fin"), time.Now().Format("2006-01-02")))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "fecha_fin inválida, formato esperado YYYY-MM-DD")
		return
	}
	if fin.Before(inicio) {
		writeJSONError(w, http.StatusBadRequest, "fecha_fin no puede ser anterior a fecha_inicio")
		return
	}

	reporte, err := app.store.Reportes.ObraFinanciero(r.Context(), id, inicio, fin)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reporte)
}

func parseDateOrDefault(dateStr, defaultStr string) string {
	if dateStr == "" {
		return defaultStr
	}
	return dateStr
}
