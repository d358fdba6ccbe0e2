package repository

import "github.com/jhoicas/Kardex-api/internal/domain/entity"

// ProductRepository define el puerto de acceso a productos (DIP).
// Las mutaciones solo son válidas dentro de TxRunner.Run: la implementación
// en memoria las serializa y hace flush síncrono al adaptador de persistencia.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// List devuelve todos los productos ordenados por LastModified descendente.
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// Delete elimina el producto; devuelve false si el ID no existía.
	Delete(id string) (bool, error)
}
