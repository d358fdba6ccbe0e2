package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre el Store.
// El log es append-only; las entradas son inmutables y pueden compartirse.
type MovementRepo struct {
	store *Store
}

// NewMovementRepository construye el adaptador sobre el store vivo.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

// Append agrega un movimiento al final del log.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	return r.store.withTx(context.Background(), func(sess *session) error {
		sessionAppendMovement(sess, movement)
		return nil
	})
}

// List devuelve los movimientos ordenados por Timestamp descendente.
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return newestFirst(r.store.movements), nil
}

// CountSince cuenta movimientos con Timestamp >= since.
func (r *MovementRepo) CountSince(since time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return countSince(r.store.movements, since), nil
}

func sessionAppendMovement(sess *session, movement *entity.Movement) {
	sess.movements = append(sess.movements, movement)
	sess.dirtyMovements = true
}

// newestFirst invierte el orden de creación sin tocar el slice vivo.
func newestFirst(movements []*entity.Movement) []*entity.Movement {
	out := make([]*entity.Movement, len(movements))
	for i, m := range movements {
		out[len(movements)-1-i] = m
	}
	return out
}

func countSince(movements []*entity.Movement, since time.Time) int {
	n := 0
	for _, m := range movements {
		if !m.Timestamp.Before(since) {
			n++
		}
	}
	return n
}
