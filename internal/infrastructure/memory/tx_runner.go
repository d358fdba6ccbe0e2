package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/inventory"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks de forma atómica sobre el Store: un lock global
// serializa la secuencia completa (leer producto → aplicar tope → append del
// movimiento), y el flush de ambas colecciones ocurre antes de confirmar.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios atados a la transacción. Si fn o la
// persistencia fallan, el estado en memoria queda como antes de la llamada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	return r.store.withTx(ctx, func(sess *session) error {
		return fn(&sessionProductRepo{sess: sess}, &sessionMovementRepo{sess: sess})
	})
}

// ── Repositorios atados a la sesión (sin locking propio: lo tiene withTx) ───

type sessionProductRepo struct {
	sess *session
}

func (r *sessionProductRepo) Create(product *entity.Product) error {
	return sessionCreateProduct(r.sess, product)
}

func (r *sessionProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.sess.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *sessionProductRepo) List() ([]*entity.Product, error) {
	return sortedProducts(r.sess.products), nil
}

func (r *sessionProductRepo) Update(product *entity.Product) error {
	return sessionUpdateProduct(r.sess, product)
}

func (r *sessionProductRepo) Delete(id string) (bool, error) {
	return sessionDeleteProduct(r.sess, id), nil
}

type sessionMovementRepo struct {
	sess *session
}

func (r *sessionMovementRepo) Append(movement *entity.Movement) error {
	sessionAppendMovement(r.sess, movement)
	return nil
}

func (r *sessionMovementRepo) List() ([]*entity.Movement, error) {
	return newestFirst(r.sess.movements), nil
}

func (r *sessionMovementRepo) CountSince(since time.Time) (int, error) {
	return countSince(r.sess.movements, since), nil
}
