package inventory

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función de forma atómica sobre el estado del kardex,
// pasando repositorios atados a esa transacción. Garantiza que la secuencia
// leer-producto → aplicar-tope → append-movimiento no se intercale con otros
// escritores y que el flush a persistencia ocurra antes de confirmar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}
