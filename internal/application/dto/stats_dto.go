package dto

// StatsResponse respuesta de GET /api/stats: agregados del inventario
// calculados frescos sobre ambas colecciones.
type StatsResponse struct {
	TotalProducts   int `json:"total_products"`
	TotalStock      int `json:"total_stock"`
	LowStock        int `json:"low_stock"`
	OutOfStock      int `json:"out_of_stock"`
	RecentMovements int `json:"recent_movements"` // últimas 24 horas
}
