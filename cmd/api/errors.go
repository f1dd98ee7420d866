package main

import (
	"errors"
	"net/http"

	"github.com/idp-construccion/erp-backend/internal/store"
)

// writeStoreError maps the store's error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a 500 with a generic message.
func (app *application) writeStoreError(w http.ResponseWriter, err error) {
	var validationErr *store.ValidationError

	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "registro no encontrado")
	case errors.Is(err, store.ErrConflict):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.As(err, &validationErr):
		writeJSONError(w, http.StatusUnprocessableEntity, validationErr.Message)
	default:
		app.logger.Error("API", "internal error: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "error interno del servidor")
	}
}
