package memory

import (
	"time"

	"github.com/jhoicas/Kardex-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo calcula los agregados del dashboard bajo un solo read-lock,
// de modo que productos y movimientos se observen como snapshot consistente
// (nunca un movimiento aplicado a medias).
type StatsRepo struct {
	store *Store
}

// NewStatsRepository construye el adaptador read-only de estadísticas.
func NewStatsRepository(store *Store) *StatsRepo {
	return &StatsRepo{store: store}
}

// GetStats recorre ambas colecciones y calcula los agregados frescos.
func (r *StatsRepo) GetStats(now time.Time, recentWindow time.Duration) (*repository.InventoryStats, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	stats := &repository.InventoryStats{
		TotalProducts: len(r.store.products),
	}
	for _, p := range r.store.products {
		stats.TotalStock += p.Quantity
		switch {
		case p.IsOutOfStock():
			stats.OutOfStock++
		case p.IsLowStock():
			stats.LowStock++
		}
	}
	stats.RecentMovements = countSince(r.store.movements, now.Add(-recentWindow))
	return stats, nil
}
