package report

import (
	"context"
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// InventoryReport datos ya resueltos para el reporte de inventario.
type InventoryReport struct {
	AppName     string
	GeneratedAt time.Time
	Stats       repository.InventoryStats
	Products    []*entity.Product // LastModified descendente
}

// PDFGenerator puerto de generación del PDF del reporte (infraestructura).
type PDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *InventoryReport) ([]byte, error)
}
