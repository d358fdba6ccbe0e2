// Package jsonfile implementa el contrato repository.Storage sobre dos
// archivos JSON planos (products.json y movements.json) en un directorio
// de datos. Cada Save reescribe la colección completa vía archivo temporal
// + rename, de modo que una escritura cortada deja el archivo anterior
// intacto y un archivo corrupto se detecta al cargar (nunca se acepta en
// silencio como colección vacía).
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

const (
	productsFile  = "products.json"
	movementsFile = "movements.json"
)

var _ repository.Storage = (*Storage)(nil)

// Storage adaptador de persistencia en archivos JSON.
type Storage struct {
	dir string
}

// NewStorage construye el adaptador sobre el directorio de datos,
// creándolo si no existe.
func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &Storage{dir: dir}, nil
}

// productRecord registro persistido de un producto.
type productRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	SKU          string    `json:"sku,omitempty"`
	Description  string    `json:"description,omitempty"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"min_stock"`
	LastModified time.Time `json:"last_modified"`
}

// movementRecord registro persistido de un movimiento.
type movementRecord struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Polarity   string    `json:"polarity"`
	ReasonType string    `json:"reason_type"`
	Quantity   int       `json:"quantity"`
	UnitPrice  *int64    `json:"unit_price,omitempty"`
	TotalPrice *int64    `json:"total_price,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// LoadProducts lee products.json. Archivo ausente = colección vacía.
func (s *Storage) LoadProducts(_ context.Context) ([]*entity.Product, error) {
	var records []productRecord
	if err := s.readCollection(productsFile, &records); err != nil {
		return nil, err
	}
	products := make([]*entity.Product, 0, len(records))
	for _, r := range records {
		products = append(products, &entity.Product{
			ID:           r.ID,
			Name:         r.Name,
			Category:     r.Category,
			SKU:          r.SKU,
			Description:  r.Description,
			Quantity:     r.Quantity,
			MinStock:     r.MinStock,
			LastModified: r.LastModified,
		})
	}
	return products, nil
}

// SaveProducts reescribe products.json con la colección completa.
func (s *Storage) SaveProducts(_ context.Context, products []*entity.Product) error {
	records := make([]productRecord, 0, len(products))
	for _, p := range products {
		records = append(records, productRecord{
			ID:           p.ID,
			Name:         p.Name,
			Category:     p.Category,
			SKU:          p.SKU,
			Description:  p.Description,
			Quantity:     p.Quantity,
			MinStock:     p.MinStock,
			LastModified: p.LastModified,
		})
	}
	return s.writeCollection(productsFile, records)
}

// LoadMovements lee movements.json. Archivo ausente = colección vacía.
func (s *Storage) LoadMovements(_ context.Context) ([]*entity.Movement, error) {
	var records []movementRecord
	if err := s.readCollection(movementsFile, &records); err != nil {
		return nil, err
	}
	movements := make([]*entity.Movement, 0, len(records))
	for _, r := range records {
		movements = append(movements, &entity.Movement{
			ID:         r.ID,
			ProductID:  r.ProductID,
			Polarity:   r.Polarity,
			ReasonType: r.ReasonType,
			Quantity:   r.Quantity,
			UnitPrice:  r.UnitPrice,
			TotalPrice: r.TotalPrice,
			Reference:  r.Reference,
			Reason:     r.Reason,
			Timestamp:  r.Timestamp,
		})
	}
	return movements, nil
}

// SaveMovements reescribe movements.json con el log completo.
// Debilidad conocida del contrato: el log debería ser append-only para ser
// a prueba de caídas; la reescritura completa mantiene el contrato simple.
func (s *Storage) SaveMovements(_ context.Context, movements []*entity.Movement) error {
	records := make([]movementRecord, 0, len(movements))
	for _, m := range movements {
		records = append(records, movementRecord{
			ID:         m.ID,
			ProductID:  m.ProductID,
			Polarity:   m.Polarity,
			ReasonType: m.ReasonType,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			TotalPrice: m.TotalPrice,
			Reference:  m.Reference,
			Reason:     m.Reason,
			Timestamp:  m.Timestamp,
		})
	}
	return s.writeCollection(movementsFile, records)
}

func (s *Storage) readCollection(name string, out interface{}) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("leer %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decodificar %s: %w", name, err)
	}
	return nil
}

// writeCollection escribe en un temporal del mismo directorio, hace fsync y
// recién entonces renombra sobre el destino.
func (s *Storage) writeCollection(name string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("crear temporal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("renombrar %s: %w", name, err)
	}
	return nil
}
