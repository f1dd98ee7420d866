package main

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestVerifyPassword(t *testing.T) {
	app := newTestApplication()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"correcta", `{"password":"secreto"}`, http.StatusOK},
		{"incorrecta", `{"password":"otra"}`, http.StatusUnauthorized},
		{"vacia", `{"password":""}`, http.StatusUnauthorized},
		{"cuerpo invalido", `{`, http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/verify", bytes.NewBufferString(tc.body))
			rr := executeRequest(app, req)
			assert.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestVerifyPasswordSinConfigurar(t *testing.T) {
	app := newTestApplication()
	app.config.adminPassword = ""

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/auth/verify", bytes.NewBufferString(`{"password":""}`))
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApplication()
	app.store = store.Storage{
		Health: &healthStub{ping: func(context.Context) error { return nil }},
	}

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "available")
}

func TestHealthCheckBaseCaida(t *testing.T) {
	app := newTestApplication()
	app.store = store.Storage{
		Health: &healthStub{ping: func(context.Context) error { return context.DeadlineExceeded }},
	}

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	rr := executeRequest(app, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
