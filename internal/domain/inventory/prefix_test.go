package inventory_test

import (
	"testing"

	"github.com/jhoicas/facturacion-lotes/internal/domain"
	"github.com/jhoicas/facturacion-lotes/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Candidatos de prefijo
// ──────────────────────────────────────────────────────────────────────────────

func TestCandidatePrefixes_VariasPalabras(t *testing.T) {
	got := inventory.CandidatePrefixes("Paracetamol 500mg")
	assert.Equal(t, []string{"P5", "PG", "L5"}, got)
}

func TestCandidatePrefixes_UnaPalabra(t *testing.T) {
	got := inventory.CandidatePrefixes("aspirin")
	require.NotEmpty(t, got)
	assert.Equal(t, "AN", got[0], "primero: primera + última letra")
	assert.Equal(t, "AS", got[1], "segundo: dos primeras letras")
	assert.Contains(t, got, "AP")
	assert.Contains(t, got, "AR")
	assert.NotContains(t, got, "AI", "las vocales no generan candidatos")
	assert.Equal(t, "A9", got[len(got)-1])
}

func TestCandidatePrefixes_UnaLetra(t *testing.T) {
	got := inventory.CandidatePrefixes("x")
	assert.Equal(t, "XX", got[0])
	assert.Equal(t, "X1", got[1])
}

func TestCandidatePrefixes_IgnoraSimbolos(t *testing.T) {
	got := inventory.CandidatePrefixes("  vit-c  (plus) ")
	assert.Equal(t, "VP", got[0])
	assert.Nil(t, inventory.CandidatePrefixes(" -- "))
}

func TestCandidatePrefixes_OtraEscritura(t *testing.T) {
	got := inventory.CandidatePrefixes("Парацетамол")
	require.NotEmpty(t, got)
	assert.Equal(t, "ПЛ", got[0])
	assert.Equal(t, "ПА", got[1])
	assert.Equal(t, "П9", got[len(got)-1])

	got = inventory.CandidatePrefixes("阿司匹林 片")
	assert.Equal(t, "阿片", got[0])
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección de prefijo
// ──────────────────────────────────────────────────────────────────────────────

func TestChoosePrefix_ProductosConMismaPalabraInicial(t *testing.T) {
	taken := map[string]struct{}{}

	p1, err := inventory.ChoosePrefix("Paracetamol 500mg", taken)
	require.NoError(t, err)
	taken[p1] = struct{}{}

	p2, err := inventory.ChoosePrefix("Paracetamol 250mg", taken)
	require.NoError(t, err)

	assert.Equal(t, "P5", p1)
	assert.Equal(t, "P2", p2)
	assert.NotEqual(t, p1, p2)
}

func TestChoosePrefix_ComparacionExacta(t *testing.T) {
	// "P50" ocupado no bloquea "P5": no es una búsqueda por subcadena
	taken := map[string]struct{}{"P50": {}}
	p, err := inventory.ChoosePrefix("Paracetamol 500mg", taken)
	require.NoError(t, err)
	assert.Equal(t, "P5", p)
}

func TestChoosePrefix_RespaldoNumerico(t *testing.T) {
	taken := map[string]struct{}{"P5": {}, "PG": {}, "L5": {}, "P1": {}}
	p, err := inventory.ChoosePrefix("Paracetamol 500mg", taken)
	require.NoError(t, err)
	assert.Equal(t, "P2", p)
}

func TestChoosePrefix_NombreVacio(t *testing.T) {
	_, err := inventory.ChoosePrefix("   ", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizePrefix(t *testing.T) {
	p, err := inventory.NormalizePrefix(" pc ")
	require.NoError(t, err)
	assert.Equal(t, "PC", p)

	p, err = inventory.NormalizePrefix("пл2")
	require.NoError(t, err)
	assert.Equal(t, "ПЛ2", p)

	for _, bad := range []string{"", "P", "П", "P-1", "ABCDEFGHI", "ПАРАЦЕТАМ"} {
		_, err := inventory.NormalizePrefix(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestNormalizeProductName(t *testing.T) {
	assert.Equal(t, "Paracetamol 500mg", inventory.NormalizeProductName("  Paracetamol \t 500mg "))
}
