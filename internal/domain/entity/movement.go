package entity

import "time"

// Polaridad canónica de un movimiento: única dimensión que afecta la aritmética.
const (
	PolarityIncrease = "increase" // entrada
	PolarityDecrease = "decrease" // salida
)

// Clasificación semántica del movimiento (solo para reportes).
const (
	ReasonSale       = "sale"       // venta
	ReasonPurchase   = "purchase"   // compra
	ReasonAdjustment = "adjustment" // ajuste
	ReasonReturn     = "return"     // devolución
)

// Movement representa un movimiento del kardex. Inmutable una vez creado:
// las correcciones son movimientos nuevos, nunca ediciones del historial.
// ProductID es una referencia débil: el producto puede haberse eliminado
// después, y el movimiento se conserva como registro de auditoría.
type Movement struct {
	ID         string
	ProductID  string
	Polarity   string // increase | decrease
	ReasonType string // sale | purchase | adjustment | return
	Quantity   int    // magnitud absoluta, siempre > 0
	UnitPrice  *int64 // centavos; nil si no aplica
	TotalPrice *int64 // UnitPrice * Quantity, derivado al crear
	Reference  string // factura, orden, nota, etc.
	Reason     string // texto libre de auditoría
	Timestamp  time.Time
}

// SignedDelta devuelve el efecto con signo sobre la cantidad del producto.
func (m *Movement) SignedDelta() int {
	if m.Polarity == PolarityDecrease {
		return -m.Quantity
	}
	return m.Quantity
}
