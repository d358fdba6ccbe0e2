// Package export genera las dos colecciones como texto delimitado con
// comillas de campo (CSV), listo para descarga.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Texto de respaldo para movimientos cuyo producto ya fue eliminado.
const deletedProductFallback = "producto ya no existe"

var centsPerUnit = decimal.NewFromInt(100)

// CSVUseCase exporta productos y movimientos en CSV.
type CSVUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewCSVUseCase construye el caso de uso.
func NewCSVUseCase(productRepo repository.ProductRepository, movRepo repository.MovementRepository) *CSVUseCase {
	return &CSVUseCase{productRepo: productRepo, movRepo: movRepo}
}

// WriteProducts escribe la colección de productos (LastModified descendente).
func (uc *CSVUseCase) WriteProducts(w io.Writer) error {
	products, err := uc.productRepo.List()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "name", "category", "sku", "description", "quantity", "min_stock", "last_modified"}); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	for _, p := range products {
		row := []string{
			p.ID, p.Name, p.Category, p.SKU, p.Description,
			strconv.Itoa(p.Quantity), strconv.Itoa(p.MinStock),
			p.LastModified.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("escribir producto: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMovements escribe el log de movimientos (Timestamp descendente).
// Los precios se almacenan en centavos y se exportan en unidades con dos
// decimales; el nombre de producto usa el respaldo si ya no existe.
func (uc *CSVUseCase) WriteMovements(w io.Writer) error {
	movements, err := uc.movRepo.List()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	header := []string{"id", "product_id", "product_name", "polarity", "reason_type", "quantity", "unit_price", "total_price", "reference", "reason", "timestamp"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("escribir encabezado: %w", err)
	}
	names := make(map[string]string)
	for _, m := range movements {
		name, ok := names[m.ProductID]
		if !ok {
			name = uc.productName(m.ProductID)
			names[m.ProductID] = name
		}
		row := []string{
			m.ID, m.ProductID, name, m.Polarity, m.ReasonType,
			strconv.Itoa(m.Quantity),
			formatCents(m.UnitPrice), formatCents(m.TotalPrice),
			m.Reference, m.Reason,
			m.Timestamp.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("escribir movimiento: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (uc *CSVUseCase) productName(productID string) string {
	product, err := uc.productRepo.GetByID(productID)
	if errors.Is(err, domain.ErrNotFound) || product == nil {
		return deletedProductFallback
	}
	return product.Name
}

// formatCents convierte centavos a unidades con dos decimales ("1250" → "12.50").
func formatCents(cents *int64) string {
	if cents == nil {
		return ""
	}
	return decimal.NewFromInt(*cents).Div(centsPerUnit).StringFixed(2)
}
