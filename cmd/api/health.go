package main

import "net/http"

// @Summary		Health check
// @Description	returns the status of the service and its database
// @Tags			Health
// @Produce		json
// @Success		200	{object}	map[string]string
// @Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.store.Health.Ping(r.Context()); err != nil {
		app.logger.Error("Health", "Database unreachable: %v", err)
		writeJSONError(w, http.StatusServiceUnavailable, "base de datos no disponible")
		return
	}

	data := map[string]string{
		"status":  "available",
		"version": "0.1.0",
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
	}
}
