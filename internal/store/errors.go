package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrNotFound = errors.New("registro no encontrado")
	ErrConflict = errors.New("el registro ya existe")
)

// ValidationError marks input rejected at the store boundary, carrying a
// message meant for the API response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// translate maps driver errors onto the store's sentinel taxonomy so
// handlers never see pq internals.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", ErrConflict, pqErr.Detail)
		case "23503":
			return NewValidationError("referencia inválida: %s", pqErr.Detail)
		}
	}
	return err
}
