package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// Quantity negativa se recorta a 0 (nunca es error en este campo);
// MinStock ausente toma el valor por defecto 5.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Category    string `json:"category" validate:"required,min=1,max=100"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
	Quantity    *int   `json:"quantity"`
	MinStock    *int   `json:"min_stock"`
}

// UpdateProductRequest actualización parcial: solo los campos presentes se
// mezclan sobre el registro existente.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=100"`
	SKU         *string `json:"sku"`
	Description *string `json:"description"`
	Quantity    *int    `json:"quantity"`
	MinStock    *int    `json:"min_stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	SKU          string    `json:"sku,omitempty"`
	Description  string    `json:"description,omitempty"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"min_stock"`
	LastModified time.Time `json:"last_modified"`
}

// ProductListResponse lista de productos (LastModified descendente).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
