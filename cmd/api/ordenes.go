package main

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/idp-construccion/erp-backend/internal/finanzas"
	"github.com/idp-construccion/erp-backend/internal/response"
	"github.com/idp-construccion/erp-backend/internal/store"
	"github.com/shopspring/decimal"
)

type CreateOrdenItem struct {
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	Descripcion    string          `json:"descripcion"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

type CreateOrdenRequest struct {
	ObraID        uuid.UUID         `json:"obra_id"`
	ProveedorID   uuid.UUID         `json:"proveedor_id"`
	RequisicionID *uuid.UUID        `json:"requisicion_id"`
	FechaEntrega  string            `json:"fecha_entrega"`
	TipoEntrega   *string           `json:"tipo_entrega"`
	Descuento     decimal.Decimal   `json:"descuento"`
	TieneIVA      *bool             `json:"tiene_iva"`
	Observaciones *string           `json:"observaciones"`
	CreadoPor     *string           `json:"creado_por"`
	Items         []CreateOrdenItem `json:"items"`
}

type UpdateOrdenRequest struct {
	FechaEntrega  *string            `json:"fecha_entrega"`
	Estado        *string            `json:"estado"`
	TipoEntrega   *string            `json:"tipo_entrega"`
	Descuento     *decimal.Decimal   `json:"descuento"`
	TieneIVA      *bool              `json:"tiene_iva"`
	Observaciones *string            `json:"observaciones"`
	Items         *[]CreateOrdenItem `json:"items"`
}

func (app *application) handleListOrdenes(w http.ResponseWriter, r *http.Request) {
	obraID, err := parseUUIDQuery(r, "obra_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "obra_id inválido")
		return
	}
	proveedorID, err := parseUUIDQuery(r, "proveedor_id")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "proveedor_id inválido")
		return
	}

	filter := store.OrdenFilter{
		ObraID:      obraID,
		ProveedorID: proveedorID,
		Estado:      r.URL.Query().Get("estado"),
		Pagination:  parsePagination(r),
	}

	ordenes, total, err := app.store.Ordenes.List(r.Context(), filter)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, response.NewPaginated(ordenes, total, filter.Page, filter.PageSize))
}

func (app *application) handleGetOrden(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	orden, err := app.store.Ordenes.GetByID(r.Context(), id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orden)
}

// @Summary		Create purchase order
// @Description	creates an order with its items; totals are computed server-side
// @Tags			OrdenesCompra
// @Accept			json
// @Produce		json
// @Router			/api/v1/ordenes-compra [post]
func (app *application) handleCreateOrden(w http.ResponseWriter, r *http.Request) {
	var payload CreateOrdenRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if len(payload.Items) == 0 {
		writeJSONError(w, http.StatusUnprocessableEntity, "la orden requiere al menos un item")
		return
	}

	fechaEntrega, err := parseTime(payload.FechaEntrega)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "fecha_entrega inválida, formato esperado YYYY-MM-DD")
		return
	}

	ctx := r.Context()
	if _, err := app.store.Obras.GetByID(ctx, payload.ObraID); err != nil {
		app.writeStoreError(w, err)
		return
	}
	if _, err := app.store.Proveedores.GetByID(ctx, payload.ProveedorID); err != nil {
		app.writeStoreError(w, err)
		return
	}

	items, itemsCalculo, err := buildOrdenItems(payload.Items)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	tieneIVA := true
	if payload.TieneIVA != nil {
		tieneIVA = *payload.TieneIVA
	}

	totales, err := finanzas.CalcularTotalesOrden(itemsCalculo, payload.Descuento, tieneIVA)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	numero, err := app.store.Ordenes.SiguienteNumero(ctx, time.Now().Year())
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	orden := &store.OrdenCompra{
		NumeroOrden:    numero,
		ObraID:         payload.ObraID,
		ProveedorID:    payload.ProveedorID,
		RequisicionID:  payload.RequisicionID,
		FechaEntrega:   fechaEntrega,
		Estado:         "borrador",
		TipoEntrega:    payload.TipoEntrega,
		Subtotal:       totales.Subtotal,
		Descuento:      payload.Descuento,
		DescuentoMonto: totales.DescuentoMonto,
		TieneIVA:       tieneIVA,
		IVA:            totales.IVA,
		Total:          totales.Total,
		Observaciones:  payload.Observaciones,
		CreadoPor:      payload.CreadoPor,
		Items:          items,
	}

	if err := app.store.Ordenes.Create(ctx, orden); err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orden)
}

// handleUpdateOrden applies a patch and recomputes totals whenever the item
// list, discount or tax flag changes.
func (app *application) handleUpdateOrden(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var payload UpdateOrdenRequest
	if err := readJSON(w, r, &payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	ctx := r.Context()
	orden, err := app.store.Ordenes.GetByID(ctx, id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}

	if payload.FechaEntrega != nil {
		fecha, err := parseTime(*payload.FechaEntrega)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "fecha_entrega inválida, formato esperado YYYY-MM-DD")
			return
		}
		orden.FechaEntrega = fecha
	}
	if payload.Estado != nil {
		orden.Estado = *payload.Estado
	}
	if payload.TipoEntrega != nil {
		orden.TipoEntrega = payload.TipoEntrega
	}
	if payload.Descuento != nil {
		orden.Descuento = *payload.Descuento
	}
	if payload.TieneIVA != nil {
		orden.TieneIVA = *payload.TieneIVA
	}
	if payload.Observaciones != nil {
		orden.Observaciones = payload.Observaciones
	}

	replaceItems := false
	if payload.Items != nil {
		items, _, err := buildOrdenItems(*payload.Items)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		orden.Items = items
		replaceItems = true
	}

	itemsCalculo := make([]finanzas.ItemOrden, 0, len(orden.Items))
	for _, item := range orden.Items {
		itemsCalculo = append(itemsCalculo, finanzas.ItemOrden{
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Total:          item.Total,
		})
	}

	totales, err := finanzas.CalcularTotalesOrden(itemsCalculo, orden.Descuento, orden.TieneIVA)
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	orden.Subtotal = totales.Subtotal
	orden.DescuentoMonto = totales.DescuentoMonto
	orden.IVA = totales.IVA
	orden.Total = totales.Total

	if err := app.store.Ordenes.Update(ctx, id, orden, replaceItems); err != nil {
		app.writeStoreError(w, err)
		return
	}

	actualizada, err := app.store.Ordenes.GetByID(ctx, id)
	if err != nil {
		app.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, actualizada)
}

func (app *application) handleDeleteOrden(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := app.store.Ordenes.Delete(r.Context(), id); err != nil {
		app.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func buildOrdenItems(payload []CreateOrdenItem) ([]store.OrdenCompraItem, []finanzas.ItemOrden, error) {
	items := make([]store.OrdenCompraItem, 0, len(payload))
	itemsCalculo := make([]finanzas.ItemOrden, 0, len(payload))

	for _, item := range payload {
		if !item.Cantidad.IsPositive() {
			return nil, nil, store.NewValidationError("la cantidad de cada item debe ser mayor a cero")
		}
		if item.PrecioUnitario.IsNegative() {
			return nil, nil, store.NewValidationError("el precio unitario no puede ser negativo")
		}

		total := finanzas.TotalItem(item.Cantidad, item.PrecioUnitario)
		items = append(items, store.OrdenCompraItem{
			Cantidad:       item.Cantidad,
			Unidad:         item.Unidad,
			Descripcion:    item.Descripcion,
			PrecioUnitario: item.PrecioUnitario,
			Total:          total,
		})
		itemsCalculo = append(itemsCalculo, finanzas.ItemOrden{
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Total:          total,
		})
	}
	return items, itemsCalculo, nil
}
