package models

// Product represents a product entity in the inventory store.
type Product struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"lowStockThreshold"`
	Category          string  `json:"category"`
}

// LowStock reports whether the stock level is below the product's alert threshold.
func (p Product) LowStock() bool {
	return p.Stock < p.LowStockThreshold
}
