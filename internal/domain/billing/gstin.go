package billing

import "regexp"

// Formato GSTIN: 2 dígitos de estado, PAN (5 letras, 4 dígitos, 1 letra), número de
// entidad, "Z" fija y dígito de control.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// ValidGSTIN indica si s tiene formato de GSTIN.
func ValidGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}
