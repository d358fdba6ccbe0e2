package repository

import (
	"context"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// Storage es el contrato del adaptador de persistencia: carga y reescritura
// completa de las dos colecciones planas (productos y movimientos).
//
// Load de una colección ausente devuelve vacío, no error. Save reescribe la
// colección completa de forma síncrona; la mutación que lo dispara no se
// confirma al caller hasta que el Save retorna sin error.
type Storage interface {
	LoadProducts(ctx context.Context) ([]*entity.Product, error)
	SaveProducts(ctx context.Context, products []*entity.Product) error
	LoadMovements(ctx context.Context) ([]*entity.Movement, error)
	SaveMovements(ctx context.Context, movements []*entity.Movement) error
}
