package conciliacion

import "strings"

// NormalizarDescripcion lowercases a raw statement description and collapses
// consecutive whitespace to single spaces. The normalized form is stored next
// to the raw text so later lookups do not depend on the bank's formatting.
func NormalizarDescripcion(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}
