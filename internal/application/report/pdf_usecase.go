// Package report arma el reporte PDF del estado del inventario: agregados
// del dashboard más la tabla de productos.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Ventana de actividad reciente usada en el encabezado del reporte.
const reportRecentWindow = 24 * time.Hour

// PDFUseCase caso de uso del reporte de inventario.
type PDFUseCase struct {
	appName     string
	productRepo repository.ProductRepository
	statsRepo   repository.StatsRepository
	generator   PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(appName string, productRepo repository.ProductRepository, statsRepo repository.StatsRepository, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{appName: appName, productRepo: productRepo, statsRepo: statsRepo, generator: generator}
}

// GenerateInventoryPDF resuelve productos y agregados y delega el render.
func (uc *PDFUseCase) GenerateInventoryPDF(ctx context.Context) ([]byte, error) {
	now := time.Now()
	stats, err := uc.statsRepo.GetStats(now, reportRecentWindow)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List()
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInventoryPDF(ctx, &InventoryReport{
		AppName:     uc.appName,
		GeneratedAt: now,
		Stats:       *stats,
		Products:    products,
	})
}
