package main

import (
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/finanzas"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/shopspring/decimal"
)

// AlertaVencimiento is one open order annotated with its credit due date
// and urgency bucket.
type AlertaVencimiento struct {
	OrdenCompraID  uuid.UUID       `json:"orden_compra_id"`
	NumeroOrden    string          `json:"numero_orden"`
	ObraCodigo     string          `json:"obra_codigo"`
	ObraNombre     string          `json:"obra_nombre"`
	Proveedor      string          `json:"proveedor"`
	FechaOrden     string          `json:"fecha_orden"`
	DiasCredito    int             `json:"dias_credito"`
	FechaVencimiento string        `json:"fecha_vencimiento"`
	DiasRestantes  int             `json:"dias_restantes"`
	TotalOrden     decimal.Decimal `json:"total_orden"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	MontoPendiente decimal.Decimal `json:"monto_pendiente"`
	Urgencia       string          `json:"urgencia"`
}

// @Summary		Credit due-date alerts
// @Description	lists open orders with outstanding balance classified by payment urgency
// @Tags			Alertas
// @Produce		json
// @Router			/api/v1/alertas/vencimientos-credito [get]
func (app *application) handleAlertasVencimientos(w http.ResponseWriter, r *http.Request) {
	ordenes, err := app.store.Alertas.OrdenesPorVencer(r.Context())
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	hoy := time.Now()
	alertas := make([]AlertaVencimiento, 0, len(ordenes))
	for _, orden := range ordenes {
		vencimiento := finanzas.FechaVencimiento(orden.FechaOrden, orden.DiasCredito)
		restantes := finanzas.DiasRestantes(vencimiento, hoy)

		alertas = append(alertas, AlertaVencimiento{
			OrdenCompraID:    orden.OrdenCompraID,
			NumeroOrden:      orden.NumeroOrden,
			ObraCodigo:       orden.ObraCodigo,
			ObraNombre:       orden.ObraNombre,
			Proveedor:        orden.Proveedor,
			FechaOrden:       orden.FechaOrden.Format("2006-01-02"),
			DiasCredito:      orden.DiasCredito,
			FechaVencimiento: vencimiento.Format("2006-01-02"),
			DiasRestantes:    restantes,
			TotalOrden:       orden.TotalOrden,
			MontoPagado:      orden.MontoPagado,
			MontoPendiente:   orden.MontoPendiente,
			Urgencia:         finanzas.ClasificarUrgencia(restantes),
		})
	}

	// Most urgent first, closest due date breaking ties.
	sort.SliceStable(alertas, func(i, j int) bool {
		ri, rj := finanzas.RangoUrgencia(alertas[i].Urgencia), finanzas.RangoUrgencia(alertas[j].Urgencia)
		if ri != rj {
			return ri < rj
		}
		return alertas[i].DiasRestantes < alertas[j].DiasRestantes
	})

	writeJSON(w, http.StatusOK, response.APIResponse[[]AlertaVencimiento]{
		Success: true,
		Data:    alertas,
	})
}
