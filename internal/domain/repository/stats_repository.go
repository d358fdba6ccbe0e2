package repository

import "time"

// InventoryStats agregados del dashboard, calculados frescos en cada llamada
// sobre un snapshot consistente de ambas colecciones.
type InventoryStats struct {
	TotalProducts   int
	TotalStock      int
	LowStock        int // 0 < cantidad ≤ MinStock
	OutOfStock      int // cantidad = 0
	RecentMovements int // movimientos en la ventana de 24 horas
}

// StatsRepository puerto read-only para los agregados del dashboard.
type StatsRepository interface {
	GetStats(now time.Time, recentWindow time.Duration) (*InventoryStats, error)
}
