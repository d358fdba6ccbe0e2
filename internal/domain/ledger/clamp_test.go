package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Kardex-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// La regla con tope en cero es el corazón del kardex: max(0, cantidad + delta)
// aplicado paso a paso. Estos tests fijan esa semántica con trazas concretas
// para que cualquier cambio accidental (por ejemplo, topar sobre la suma
// acumulada en vez de por paso) falle de inmediato.
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyDelta_CasosBasicos(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		delta    int
		want     int
	}{
		{"entrada simple", 10, 5, 15},
		{"salida simple", 10, -4, 6},
		{"salida exacta a cero", 10, -10, 0},
		{"salida que excede el stock se topa en cero", 5, -8, 0},
		{"delta cero no cambia nada", 7, 0, 7},
		{"desde cero solo puede subir", 0, -3, 0},
		{"entrada desde cero", 0, 12, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ledger.ApplyDelta(tc.quantity, tc.delta))
		})
	}
}

// TestReplay_TrazaSecuencial verifica el pliegue ordenado: cada paso topa
// en cero antes de aplicar el siguiente delta.
func TestReplay_TrazaSecuencial(t *testing.T) {
	// 0 +10 => 10; -4 => 6; -6 => 0
	assert.Equal(t, 0, ledger.Replay(0, []int{10, -4, -6}))

	// 5 -8 => 0 (topado); +3 => 3
	assert.Equal(t, 3, ledger.Replay(5, []int{-8, 3}))
}

// TestReplay_NoConmutativo demuestra que el orden importa: la misma bolsa
// de deltas produce resultados distintos según la secuencia, porque el tope
// descarta el excedente negativo de forma irreversible.
func TestReplay_NoConmutativo(t *testing.T) {
	ordenA := ledger.Replay(0, []int{-5, 10}) // 0 -> 0 -> 10
	ordenB := ledger.Replay(0, []int{10, -5}) // 0 -> 10 -> 5

	assert.Equal(t, 10, ordenA)
	assert.Equal(t, 5, ordenB)
	assert.NotEqual(t, ordenA, ordenB,
		"el pliegue con tope no es conmutativo: el orden de los movimientos importa")
}

func TestReplay_NuncaNegativo(t *testing.T) {
	deltas := []int{3, -100, 2, -2, -50, 1}
	q := 0
	for i := range deltas {
		q = ledger.Replay(0, deltas[:i+1])
		assert.GreaterOrEqual(t, q, 0, "la cantidad nunca puede ser negativa")
	}
}
