package main

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/finanzas"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateProveedorRequest struct {
	RazonSocial       string          `json:"razon_social"`
	NombreComercial   *string         `json:"nombre_comercial"`
	RFC               string          `json:"rfc"`
	Direccion         *string         `json:"direccion"`
	Ciudad            *string         `json:"ciudad"`
	CodigoPostal      *string         `json:"codigo_postal"`
	Telefono          *string         `json:"telefono"`
	Email             *string         `json:"email"`
	ContactoPrincipal *string         `json:"contacto_principal"`
	Banco             *string         `json:"banco"`
	NumeroCuenta      *string         `json:"numero_cuenta"`
	Clabe             *string         `json:"clabe"`
	TipoProveedor     *string         `json:"tipo_proveedor"`
	CreditoDias       int             `json:"credito_dias"`
	LimiteCredito     decimal.Decimal `json:"limite_credito"`
}

type ValidarCreditoRequest struct {
	ProveedorID uuid.UUID       `json:"proveedor_id"`
	Monto       decimal.Decimal `json:"monto"`
}

// ValidacionLineaCredito is the credit-check verdict returned to the caller.
type ValidacionLineaCredito struct {
	ProveedorID             uuid.UUID       `json:"proveedor_id"`
	ProveedorNombre         string          `json:"proveedor_nombre"`
	LineaCreditoTotal       decimal.Decimal `json:"linea_credito_total"`
	LineaCreditoUsada       decimal.Decimal `json:"linea_credito_usada"`
	LineaCreditoDisponible  decimal.Decimal `json:"linea_credito_disponible"`
	MontoSolicitado         decimal.Decimal `json:"monto_solicitado"`
	DisponibleDespuesCompra decimal.Decimal `json:"disponible_despues_compra"`
	Aprobado                bool            `json:"aprobado"`
	Mensaje                 string          `json:"mensaje"`
}

func (app *application) handleListProveedores(w http.ResponseWriter, r *http.Request) {
	filter := store.ProveedorFilter{Pagination: parsePagination(r)}
	switch r.URL.Query().Get("activo") {
	case "true":
		activo := true
		filter.Activo = &activo
	case "false":
		activo := false
		filter.Activo = &activo
	}

	proveedores, total, err := app.store.Proveedores.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(proveedores, total, filter.Page, filter.PageSize))
}

func (app *application) handleGetProveedor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	proveedor, err := app.store.Proveedores.GetByID(r.Context(), id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proveedor)
}

func (app *application) handleCreateProveedor(w http.ResponseWriter, r *http.Request) {
	var payload CreateProveedorRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.RazonSocial == "" || payload.RFC == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "razon_social y rfc son obligatorios")
		return
	}
	if payload.LimiteCredito.IsNegative() || payload.CreditoDias < 0 {
		writeJSONError(w, http.StatusUnprocessableEntity, "limite_credito y credito_dias no pueden ser negativos")
		return
	}

	proveedor := &store.Proveedor{
		RazonSocial:       payload.RazonSocial,
		NombreComercial:   payload.NombreComercial,
		RFC:               payload.RFC,
		Direccion:         payload.Direccion,
		Ciudad:            payload.Ciudad,
		CodigoPostal:      payload.CodigoPostal,
		Telefono:          payload.Telefono,
		Email:             payload.Email,
		ContactoPrincipal: payload.ContactoPrincipal,
		Banco:             payload.Banco,
		NumeroCuenta:      payload.NumeroCuenta,
		Clabe:             payload.Clabe,
		TipoProveedor:     payload.TipoProveedor,
		CreditoDias:       payload.CreditoDias,
		LimiteCredito:     payload.LimiteCredito,
		Activo:            true,
	}

	if err := app.store.Proveedores.Create(r.Context(), proveedor); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proveedor)
}

func (app *application) handleUpdateProveedor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var patch store.ProveedorPatch
	if err := readJSON(w, r, &patch); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	proveedor, err := app.store.Proveedores.Update(r.Context(), id, patch)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proveedor)
}

func (app *application) handleDeleteProveedor(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Proveedores.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary		Validate supplier credit line
// @Description	checks a proposed purchase against the supplier's available credit
// @Tags			Proveedores
// @Accept			json
// @Produce		json
// @Router			/api/v1/proveedores/validar-linea-credito [post]
func (app *application) handleValidarLineaCredito(w http.ResponseWriter, r *http.Request) {
	var payload ValidarCreditoRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if payload.Monto.IsNegative() {
		writeJSONError(w, http.StatusUnprocessableEntity, "monto no puede ser negativo")
		return
	}

	ctx := r.Context()
	proveedor, err := app.store.Proveedores.GetByID(ctx, payload.ProveedorID)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	usado, err := app.store.Proveedores.CreditoUsado(ctx, proveedor.ID)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	resultado := finanzas.EvaluarCredito(proveedor.LimiteCredito, usado, payload.Monto)

	writeJSON(w, http.StatusOK, ValidacionLineaCredito{
		ProveedorID:             proveedor.ID,
		ProveedorNombre:         proveedor.RazonSocial,
		LineaCreditoTotal:       proveedor.LimiteCredito,
		LineaCreditoUsada:       usado,
		LineaCreditoDisponible:  resultado.Disponible,
		MontoSolicitado:         payload.Monto,
		DisponibleDespuesCompra: resultado.DisponibleDespues,
		Aprobado:                resultado.Aprobado,
		Mensaje:                 resultado.Mensaje,
	})
}
