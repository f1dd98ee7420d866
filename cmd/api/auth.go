package main

import (
	"crypto/subtle"
	"net/http"
)

type VerifyPasswordRequest struct {
	Password string `json:"password"`
}

// @Summary		Verify admin password
// @Description	checks the shared admin password
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Router			/api/v1/auth/verify [post]
func (app *application) handleVerifyPassword(w http.ResponseWriter, r *http.Request) {
	var payload VerifyPasswordRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	if app.config.adminPassword == "" ||
		subtle.ConstantTimeCompare([]byte(payload.Password), []byte(app.config.adminPassword)) != 1 {
		writeJSONError(w, http.StatusUnauthorized, "Contraseña incorrecta")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
