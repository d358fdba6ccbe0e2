package entity

import "time"

// MinStock por defecto cuando el request no lo especifica.
const DefaultMinStock = 5

// Product representa un producto del inventario con su cantidad actual.
// Quantity nunca es negativa: solo se modifica vía movimientos aplicados
// con la regla de actualización con tope en cero (ver paquete ledger).
type Product struct {
	ID           string
	Name         string
	Category     string
	SKU          string // opcional
	Description  string // opcional
	Quantity     int
	MinStock     int       // umbral de stock bajo
	LastModified time.Time // se refresca en cada mutación (edición o movimiento)
}

// IsLowStock indica si el producto está en stock bajo (0 < cantidad ≤ MinStock).
func (p *Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity <= p.MinStock
}

// IsOutOfStock indica si el producto está agotado.
func (p *Product) IsOutOfStock() bool {
	return p.Quantity == 0
}
