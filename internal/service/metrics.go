package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// Metrics summarizes the inventory for the dashboard.
type Metrics struct {
	TotalProducts  int     `json:"total_products"`
	TotalUnits     int     `json:"total_units"`
	LowStockCount  int     `json:"low_stock_count"`
	InventoryValue float64 `json:"inventory_value"`
}

// DashboardMetrics aggregates counts and stock value over the whole inventory.
func (s *InventoryService) DashboardMetrics(ctx context.Context) (Metrics, error) {
	m := Metrics{}

	products, err := s.ListProducts(ctx)
	if err != nil {
		return m, err
	}

	value := decimal.Zero
	for _, p := range products {
		m.TotalProducts++
		m.TotalUnits += p.Stock
		if p.LowStock() {
			m.LowStockCount++
		}
		value = value.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	m.InventoryValue = value.Round(2).InexactFloat64()

	return m, nil
}
