package handlers

import "time"

// UpdateStockRequest documents the body of POST /update-stock.
type UpdateStockRequest struct {
	ID          int `json:"id" example:"1"`
	NewQuantity int `json:"newQuantity" example:"3"`
}

// AddProductRequest documents the body of POST /add-product. Numeric fields
// also accept numeric strings.
type AddProductRequest struct {
	Name              string  `json:"name" example:"Widget"`
	Price             float64 `json:"price" example:"9.99"`
	Stock             int     `json:"stock" example:"10"`
	Category          string  `json:"category" example:"Hardware"`
	LowStockThreshold int     `json:"lowStockThreshold,omitempty" example:"5"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
