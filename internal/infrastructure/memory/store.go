// Package memory implementa los puertos de repositorio sobre un estado en
// memoria indexado por ID, con flush síncrono al adaptador de persistencia
// (repository.Storage) en cada mutación.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Store guarda el estado vivo de las dos colecciones. Todas las mutaciones
// pasan por withTx: exclusión mutua global, flush síncrono y rollback del
// estado en memoria si la persistencia falla. El pliegue con tope en cero
// no es conmutativo entre escritores intercalados, de ahí el lock global.
type Store struct {
	mu        sync.RWMutex
	storage   repository.Storage
	products  map[string]*entity.Product
	movements []*entity.Movement // orden de creación (timestamp ascendente)
}

// NewStore construye el store vacío sobre el adaptador de persistencia.
func NewStore(storage repository.Storage) *Store {
	return &Store{
		storage:  storage,
		products: make(map[string]*entity.Product),
	}
}

// Load lee ambas colecciones desde el adaptador e indexa productos por ID.
// Una colección ausente llega vacía, no como error.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.storage.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("cargar productos: %w", err)
	}
	movements, err := s.storage.LoadMovements(ctx)
	if err != nil {
		return fmt.Errorf("cargar movimientos: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make(map[string]*entity.Product, len(products))
	for _, p := range products {
		s.products[p.ID] = p
	}
	s.movements = movements
	return nil
}

// session estado mutable de una transacción en curso. Trabaja sobre copias:
// el estado vivo no se toca hasta el commit.
type session struct {
	products       map[string]*entity.Product
	movements      []*entity.Movement
	dirtyProducts  bool
	dirtyMovements bool
}

// withTx serializa la mutación, ejecuta fn sobre copias, hace flush de las
// colecciones sucias y recién entonces publica el nuevo estado. Si fn o el
// flush fallan, el estado en memoria queda intacto (rollback implícito).
func (s *Store) withTx(ctx context.Context, fn func(sess *session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &session{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: s.movements,
	}
	for id, p := range s.products {
		cp := *p
		sess.products[id] = &cp
	}

	if err := fn(sess); err != nil {
		return err
	}

	if sess.dirtyProducts {
		if err := s.storage.SaveProducts(ctx, productSlice(sess.products)); err != nil {
			return fmt.Errorf("%w: guardar productos: %v", domain.ErrPersistence, err)
		}
	}
	if sess.dirtyMovements {
		if err := s.storage.SaveMovements(ctx, sess.movements); err != nil {
			return fmt.Errorf("%w: guardar movimientos: %v", domain.ErrPersistence, err)
		}
	}

	s.products = sess.products
	s.movements = sess.movements
	return nil
}

func productSlice(m map[string]*entity.Product) []*entity.Product {
	out := make([]*entity.Product, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	return out
}
