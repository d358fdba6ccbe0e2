package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el Store.
// Cada mutador fuera de TxRunner corre su propia mini-transacción (lock
// global + flush + rollback), análogo al autocommit de una sentencia SQL.
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el adaptador sobre el store vivo.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	return r.store.withTx(context.Background(), func(sess *session) error {
		return sessionCreateProduct(sess, product)
	})
}

// GetByID devuelve una copia del producto, o ErrNotFound.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// List devuelve copias de todos los productos, LastModified descendente.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return sortedProducts(r.store.products), nil
}

// Update reemplaza el registro del producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	return r.store.withTx(context.Background(), func(sess *session) error {
		return sessionUpdateProduct(sess, product)
	})
}

// Delete elimina el producto; devuelve false si no existía.
func (r *ProductRepo) Delete(id string) (bool, error) {
	existed := false
	err := r.store.withTx(context.Background(), func(sess *session) error {
		existed = sessionDeleteProduct(sess, id)
		return nil
	})
	return existed, err
}

// ── Operaciones compartidas con los repos de sesión (TxRunner) ──────────────

func sessionCreateProduct(sess *session, product *entity.Product) error {
	cp := *product
	sess.products[cp.ID] = &cp
	sess.dirtyProducts = true
	return nil
}

func sessionUpdateProduct(sess *session, product *entity.Product) error {
	if _, ok := sess.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	sess.products[cp.ID] = &cp
	sess.dirtyProducts = true
	return nil
}

func sessionDeleteProduct(sess *session, id string) bool {
	if _, ok := sess.products[id]; !ok {
		return false
	}
	delete(sess.products, id)
	sess.dirtyProducts = true
	return true
}

func sortedProducts(m map[string]*entity.Product) []*entity.Product {
	list := make([]*entity.Product, 0, len(m))
	for _, p := range m {
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LastModified.Equal(list[j].LastModified) {
			return list[i].ID < list[j].ID // orden estable ante empates
		}
		return list[i].LastModified.After(list[j].LastModified)
	})
	return list
}
