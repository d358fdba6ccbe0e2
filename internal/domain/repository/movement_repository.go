package repository

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
)

// MovementRepository define el puerto del log de movimientos.
// El log es append-only: las entradas nunca se editan ni se borran.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	// List devuelve todos los movimientos ordenados por Timestamp descendente.
	List() ([]*entity.Movement, error)
	// CountSince cuenta movimientos con Timestamp >= since.
	CountSince(since time.Time) (int, error)
}
