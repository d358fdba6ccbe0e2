package dto

import "time"

// CreateMovementRequest body para POST /api/movements.
// Type acepta el vocabulario canónico (sale, purchase, adjustment, return)
// o los tipos legados (in, out, add, remove). Polarity es obligatoria para
// adjustment; en los demás casos, si se envía, debe coincidir con la implícita.
type CreateMovementRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Polarity  string `json:"polarity,omitempty"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	UnitPrice *int64 `json:"unit_price,omitempty"` // centavos
	Reference string `json:"reference,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse salida de un movimiento. ProductName se resuelve al
// momento de la consulta; si el producto ya no existe se usa el texto de
// respaldo (la referencia del movimiento al producto es débil).
type MovementResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Polarity    string    `json:"polarity"`
	ReasonType  string    `json:"reason_type"`
	Quantity    int       `json:"quantity"`
	UnitPrice   *int64    `json:"unit_price,omitempty"`
	TotalPrice  *int64    `json:"total_price,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// MovementListResponse lista de movimientos (Timestamp descendente).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
