package inventory

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
)

var prefixPattern = regexp.MustCompile(`^[\p{L}\p{Nd}]{2,8}$`)

// NormalizePrefix pasa a mayúsculas y valida un prefijo ingresado por el usuario.
func NormalizePrefix(raw string) (string, error) {
	p := strings.ToUpper(strings.TrimSpace(raw))
	if !prefixPattern.MatchString(p) {
		return "", domain.NewValidationError("prefix", "debe tener entre 2 y 8 letras o dígitos")
	}
	return p, nil
}

// words devuelve las palabras del nombre en mayúsculas, solo letras y dígitos de cualquier escritura.
func words(productName string) [][]rune {
	var out [][]rune
	for _, f := range strings.Fields(productName) {
		var w []rune
		for _, r := range strings.ToUpper(f) {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				w = append(w, r)
			}
		}
		if len(w) > 0 {
			out = append(out, w)
		}
	}
	return out
}

func isConsonant(r rune) bool {
	return unicode.IsLetter(r) && !strings.ContainsRune("AEIOU", r)
}

// CandidatePrefixes prefijos candidatos para un nombre de producto, en orden de preferencia
// y sin repetidos. Devuelve nil si el nombre no tiene letras ni dígitos.
//
//	Varias palabras: F1+S1, F1+Sn, Fn+S1 (F/S = primera y segunda palabra, 1/n = primera/última letra)
//	Una palabra:     W1+Wn, W1+W2, W1+cada consonante posterior, W1+1..9
//	Una letra:       W+X, W+1..9
func CandidatePrefixes(productName string) []string {
	ws := words(productName)
	if len(ws) == 0 {
		return nil
	}

	var cands []string
	seen := make(map[string]struct{})
	add := func(rs ...rune) {
		s := string(rs)
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		cands = append(cands, s)
	}

	first := ws[0]
	lead := first[0]
	if len(ws) >= 2 {
		second := ws[1]
		add(lead, second[0])
		add(lead, second[len(second)-1])
		add(first[len(first)-1], second[0])
		return cands
	}

	if len(first) == 1 {
		add(lead, 'X')
	} else {
		add(lead, first[len(first)-1])
		add(lead, first[1])
		for _, r := range first[1:] {
			if isConsonant(r) {
				add(lead, r)
			}
		}
	}
	for d := '1'; d <= '9'; d++ {
		add(lead, d)
	}
	return cands
}

// ChoosePrefix elige el primer candidato que no esté en taken (comparación exacta). Si todos
// están ocupados usa la primera letra seguida de un entero creciente desde 1.
func ChoosePrefix(productName string, taken map[string]struct{}) (string, error) {
	cands := CandidatePrefixes(productName)
	if len(cands) == 0 {
		return "", domain.NewValidationError("product_name", "debe contener al menos una letra o dígito")
	}
	for _, c := range cands {
		if _, ok := taken[c]; !ok {
			return c, nil
		}
	}
	lead := []rune(cands[0])[0]
	for n := 1; ; n++ {
		c := string(lead) + strconv.Itoa(n)
		if _, ok := taken[c]; !ok {
			return c, nil
		}
	}
}

// NormalizeProductName recorta y colapsa espacios; es la clave del registro de identificadores.
func NormalizeProductName(name string) string {
	return strings.Join(strings.FieldsFunc(name, unicode.IsSpace), " ")
}
