package service

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// RowError reports why one imported row was rejected.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Products []models.Product `json:"products"`
	Errors   []RowError       `json:"errors"`
}

// ImportProducts registers every valid row in a single write. Row numbers in the
// result start at firstRow. Invalid rows are reported and skipped.
func (s *InventoryService) ImportProducts(ctx context.Context, rows []AddProductInput, firstRow int) (ImportResult, error) {
	result := ImportResult{Products: []models.Product{}, Errors: []RowError{}}

	var valid []newProduct
	for i, row := range rows {
		np, err := s.validateNewProduct(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: firstRow + i, Error: err.Error()})
			continue
		}
		valid = append(valid, np)
	}
	if len(valid) == 0 {
		return result, nil
	}

	err := s.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		id := nextID(products)
		for _, np := range valid {
			p := models.Product{
				ID:                id,
				Name:              np.name,
				Price:             np.price,
				Stock:             np.stock,
				LowStockThreshold: np.threshold,
				Category:          np.category,
			}
			products = append(products, p)
			result.Products = append(result.Products, p)
			id++
		}
		return products, nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import products: %w", err)
	}

	result.Imported = len(result.Products)
	s.logger.InfoContext(ctx, "products imported", "imported", result.Imported, "rejected", len(result.Errors))
	return result, nil
}
