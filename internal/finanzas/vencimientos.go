package finanzas

import "time"

// Urgency labels for credit-term expirations, ordered most to least urgent.
const (
	UrgenciaVencido = "vencido"
	UrgenciaCritico = "critico"
	UrgenciaUrgente = "urgente"
	UrgenciaNormal  = "normal"
)

var rangoUrgencia = map[string]int{
	UrgenciaVencido: 0,
	UrgenciaCritico: 1,
	UrgenciaUrgente: 2,
	UrgenciaNormal:  3,
}

// FechaVencimiento computes the payment due date from the order date plus
// the supplier's credit-term days.
func FechaVencimiento(fechaOrden time.Time, diasCredito int) time.Time {
	return fechaOrden.AddDate(0, 0, diasCredito)
}

// DiasRestantes counts whole days between today and the due date, negative
// once the due date has passed. Both dates are truncated to midnight so a
// due date of today yields zero.
func DiasRestantes(vencimiento, hoy time.Time) int {
	v := time.Date(vencimiento.Year(), vencimiento.Month(), vencimiento.Day(), 0, 0, 0, 0, time.UTC)
	h := time.Date(hoy.Year(), hoy.Month(), hoy.Day(), 0, 0, 0, 0, time.UTC)
	return int(v.Sub(h).Hours() / 24)
}

// ClasificarUrgencia buckets remaining days into an urgency label.
func ClasificarUrgencia(diasRestantes int) string {
	switch {
	case diasRestantes < 0:
		return UrgenciaVencido
	case diasRestantes <= 7:
		return UrgenciaCritico
	case diasRestantes <= 15:
		return UrgenciaUrgente
	default:
		return UrgenciaNormal
	}
}

// RangoUrgencia returns the sort rank of an urgency label, most urgent
// first. Unknown labels sort last.
func RangoUrgencia(urgencia string) int {
	if rango, ok := rangoUrgencia[urgencia]; ok {
		return rango
	}
	return len(rangoUrgencia)
}
