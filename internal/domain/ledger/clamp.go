// Package ledger contiene los servicios de dominio del kardex: la regla de
// actualización con tope en cero y la resolución del tipo canónico de movimiento.
package ledger

// ApplyDelta aplica la regla de actualización con tope en cero:
// NuevaCantidad = max(0, CantidadActual + Delta).
// El tope se aplica en cada paso, no sobre la suma acumulada, por lo que el
// resultado de una secuencia de movimientos depende del orden.
func ApplyDelta(quantity, delta int) int {
	q := quantity + delta
	if q < 0 {
		return 0
	}
	return q
}

// Replay pliega una secuencia de deltas con signo, en orden, partiendo de
// initial y aplicando ApplyDelta en cada paso. Es la ley que relaciona la
// cantidad actual de un producto con su historial de movimientos.
func Replay(initial int, deltas []int) int {
	q := initial
	for _, d := range deltas {
		q = ApplyDelta(q, d)
	}
	return q
}
