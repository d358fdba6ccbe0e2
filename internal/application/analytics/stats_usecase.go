// Package analytics contiene los casos de uso read-only del dashboard de
// inventario.
package analytics

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/application/dto"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

// Ventana de "actividad reciente" del dashboard.
const recentMovementsWindow = 24 * time.Hour

// StatsUseCase calcula los agregados del inventario. Sin estado propio ni
// caché: cada llamada recorre las colecciones frescas (a esta escala la
// corrección importa más que el costo).
type StatsUseCase struct {
	statsRepo repository.StatsRepository
}

// NewStatsUseCase construye el caso de uso.
func NewStatsUseCase(statsRepo repository.StatsRepository) *StatsUseCase {
	return &StatsUseCase{statsRepo: statsRepo}
}

// GetStats devuelve los agregados del momento de la llamada.
func (uc *StatsUseCase) GetStats() (*dto.StatsResponse, error) {
	stats, err := uc.statsRepo.GetStats(time.Now(), recentMovementsWindow)
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalProducts:   stats.TotalProducts,
		TotalStock:      stats.TotalStock,
		LowStock:        stats.LowStock,
		OutOfStock:      stats.OutOfStock,
		RecentMovements: stats.RecentMovements,
	}, nil
}
