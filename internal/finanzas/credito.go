package finanzas

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ResultadoCredito is the outcome of checking a proposed purchase against a
// supplier's credit line.
type ResultadoCredito struct {
	Disponible        decimal.Decimal
	DisponibleDespues decimal.Decimal
	Aprobado          bool
	Mensaje           string
}

// EvaluarCredito decides whether a purchase fits the supplier's remaining
// credit. The check is read-only: nothing is reserved, so two concurrent
// validations against the same supplier can both approve amounts that
// together exceed the limit.
func EvaluarCredito(limite, usado, solicitado decimal.Decimal) ResultadoCredito {
	disponible := limite.Sub(usado)
	despues := disponible.Sub(solicitado)

	if despues.IsNegative() {
		excedente := despues.Neg()
		return ResultadoCredito{
			Disponible:        disponible,
			DisponibleDespues: despues,
			Aprobado:          false,
			Mensaje: fmt.Sprintf(
				"Compra rechazada: excede la línea de crédito disponible por $%s", excedente.StringFixed(2)),
		}
	}

	return ResultadoCredito{
		Disponible:        disponible,
		DisponibleDespues: despues,
		Aprobado:          true,
		Mensaje: fmt.Sprintf(
			"Compra aprobada: quedarían $%s disponibles en la línea de crédito", despues.StringFixed(2)),
	}
}
