package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// CodeSeparator separa mes/año de la secuencia: P50124-1, P50124-12.
const CodeSeparator = "-"

// MonthYear mes con cero a la izquierda + últimos dos dígitos del año (enero 2024 -> "0124").
func MonthYear(t time.Time) string {
	return fmt.Sprintf("%02d%02d", int(t.Month()), t.Year()%100)
}

// CodeBase parte fija del código para prefijo y fecha de fabricación: PREFIX+MMYY+"-".
func CodeBase(prefix string, mfg time.Time) string {
	return prefix + MonthYear(mfg) + CodeSeparator
}

// FormatCode código de lote completo; seq es un entero decimal sin relleno.
func FormatCode(prefix string, mfg time.Time, seq int) string {
	return CodeBase(prefix, mfg) + strconv.Itoa(seq)
}

// RewriteCodePrefix reemplaza el segmento de prefijo al inicio del código. Si el código no
// empieza con oldPrefix lo devuelve sin cambios.
func RewriteCodePrefix(code, oldPrefix, newPrefix string) string {
	if !strings.HasPrefix(code, oldPrefix) {
		return code
	}
	return newPrefix + code[len(oldPrefix):]
}
