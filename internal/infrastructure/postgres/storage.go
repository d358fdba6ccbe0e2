package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.Storage = (*Storage)(nil)

// Storage implementación del contrato de persistencia sobre PostgreSQL.
// Save es la reescritura completa de la colección que exige el contrato:
// DELETE + INSERT de todos los registros dentro de una transacción, de modo
// que la colección nunca quede visible a medias.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage construye el adaptador sobre el pool.
func NewStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Migrate crea las tablas si no existen.
func (s *Storage) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS products (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			category      TEXT NOT NULL,
			sku           TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL DEFAULT '',
			quantity      INTEGER NOT NULL CHECK (quantity >= 0),
			min_stock     INTEGER NOT NULL,
			last_modified TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS movements (
			id          TEXT PRIMARY KEY,
			product_id  TEXT NOT NULL,
			polarity    TEXT NOT NULL,
			reason_type TEXT NOT NULL,
			quantity    INTEGER NOT NULL CHECK (quantity > 0),
			unit_price  BIGINT,
			total_price BIGINT,
			reference   TEXT NOT NULL DEFAULT '',
			reason      TEXT NOT NULL DEFAULT '',
			ts          TIMESTAMPTZ NOT NULL
		);`)
	if err != nil {
		return fmt.Errorf("migrar esquema: %w", err)
	}
	return nil
}

// LoadProducts lee la colección completa de productos.
func (s *Storage) LoadProducts(ctx context.Context) ([]*entity.Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, sku, description, quantity, min_stock, last_modified
		FROM products`)
	if err != nil {
		return nil, fmt.Errorf("cargar productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.SKU, &p.Description,
			&p.Quantity, &p.MinStock, &p.LastModified); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SaveProducts reescribe la colección completa de productos.
func (s *Storage) SaveProducts(ctx context.Context, products []*entity.Product) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("vaciar productos: %w", err)
	}
	for _, p := range products {
		_, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, category, sku, description, quantity, min_stock, last_modified)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.ID, p.Name, p.Category, p.SKU, p.Description, p.Quantity, p.MinStock, p.LastModified,
		)
		if err != nil {
			return fmt.Errorf("insert producto: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// LoadMovements lee el log completo en orden de creación (timestamp ascendente).
func (s *Storage) LoadMovements(ctx context.Context) ([]*entity.Movement, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, product_id, polarity, reason_type, quantity, unit_price, total_price, reference, reason, ts
		FROM movements ORDER BY ts ASC`)
	if err != nil {
		return nil, fmt.Errorf("cargar movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Polarity, &m.ReasonType, &m.Quantity,
			&m.UnitPrice, &m.TotalPrice, &m.Reference, &m.Reason, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SaveMovements reescribe el log completo de movimientos.
func (s *Storage) SaveMovements(ctx context.Context, movements []*entity.Movement) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM movements`); err != nil {
		return fmt.Errorf("vaciar movimientos: %w", err)
	}
	for _, m := range movements {
		_, err := tx.Exec(ctx, `
			INSERT INTO movements (id, product_id, polarity, reason_type, quantity, unit_price, total_price, reference, reason, ts)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.ID, m.ProductID, m.Polarity, m.ReasonType, m.Quantity,
			m.UnitPrice, m.TotalPrice, m.Reference, m.Reason, m.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert movimiento: %w", err)
		}
	}
	return tx.Commit(ctx)
}
