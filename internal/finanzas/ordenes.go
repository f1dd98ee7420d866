package finanzas

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TasaIVA is the VAT rate applied to orders flagged as tax-inclusive.
var TasaIVA = decimal.NewFromFloat(0.16)

var cien = decimal.NewFromInt(100)

type ItemOrden struct {
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
}

type TotalesOrden struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DescuentoMonto decimal.Decimal `json:"descuento_monto"`
	BaseGravable   decimal.Decimal `json:"subtotal_con_descuento"`
	IVA            decimal.Decimal `json:"iva"`
	Total          decimal.Decimal `json:"total"`
}

// TotalItem computes a line total from quantity and unit price.
func TotalItem(cantidad, precioUnitario decimal.Decimal) decimal.Decimal {
	return cantidad.Mul(precioUnitario).Round(2)
}

// CalcularTotalesOrden aggregates line items into order-level amounts:
// subtotal, discount amount, taxable base, VAT and total. An order with no
// items is valid and yields all-zero totals.
func CalcularTotalesOrden(items []ItemOrden, descuentoPct decimal.Decimal, tieneIVA bool) (TotalesOrden, error) {
	if descuentoPct.IsNegative() || descuentoPct.GreaterThan(cien) {
		return TotalesOrden{}, fmt.Errorf("el descuento debe estar entre 0 y 100, recibido %s", descuentoPct)
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}

	descuentoMonto := subtotal.Mul(descuentoPct).Div(cien).Round(2)
	base := subtotal.Sub(descuentoMonto)

	iva := decimal.Zero
	if tieneIVA {
		iva = base.Mul(TasaIVA).Round(2)
	}

	return TotalesOrden{
		Subtotal:       subtotal,
		DescuentoMonto: descuentoMonto,
		BaseGravable:   base,
		IVA:            iva,
		Total:          base.Add(iva),
	}, nil
}
