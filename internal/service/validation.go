package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrProductNotFound is returned when no product carries the requested id.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationError carries the message shown to the client.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

const (
	msgMissingStockFields   = "Missing 'id' or 'newQuantity'."
	msgNegativeStock        = "Stock quantity cannot be negative."
	msgMissingProductFields = "Missing required fields: name, price, stock, category."
	msgNegativePrice        = "Price cannot be negative."
	msgNegativeThreshold    = "Low stock threshold cannot be negative."
)

// UpdateStockInput is the raw body of a stock update.
type UpdateStockInput struct {
	ID          Loose `json:"id"`
	NewQuantity Loose `json:"newQuantity"`
}

// AddProductInput is the raw body of a product registration.
type AddProductInput struct {
	Name              Loose `json:"name"`
	Price             Loose `json:"price"`
	Stock             Loose `json:"stock"`
	Category          Loose `json:"category"`
	LowStockThreshold Loose `json:"lowStockThreshold,omitempty"`
}

type stockChange struct {
	id       int
	quantity int
}

func validateStockUpdate(in UpdateStockInput) (stockChange, error) {
	if !in.ID.Present() || !in.NewQuantity.Present() {
		return stockChange{}, invalid(msgMissingStockFields)
	}
	id, err := in.ID.Int()
	if err != nil {
		return stockChange{}, invalid("Field 'id' must be a whole number.")
	}
	qty, err := in.NewQuantity.Decimal()
	if err != nil {
		return stockChange{}, invalid("Field 'newQuantity' must be a number.")
	}
	if qty.IsNegative() {
		return stockChange{}, invalid(msgNegativeStock)
	}
	quantity, err := in.NewQuantity.Int()
	if err != nil {
		return stockChange{}, invalid("Field 'newQuantity' must be a whole number.")
	}
	return stockChange{id: id, quantity: quantity}, nil
}

type newProduct struct {
	name      string
	price     float64
	stock     int
	threshold int
	category  string
}

func (s *InventoryService) validateNewProduct(in AddProductInput) (newProduct, error) {
	name, _ := in.Name.Text()
	category, _ := in.Category.Text()
	if name == "" || !in.Price.Supplied() || !in.Stock.Supplied() || category == "" {
		return newProduct{}, invalid(msgMissingProductFields)
	}

	// null and blank strings count as zero for price and stock.
	var (
		price float64
		stock int
		err   error
	)
	if !in.Price.Blank() {
		price, err = in.Price.Float()
		if err != nil {
			return newProduct{}, invalid("Field 'price' must be a number.")
		}
	}
	if price < 0 {
		return newProduct{}, invalid(msgNegativePrice)
	}

	if !in.Stock.Blank() {
		stock, err = in.Stock.Int()
		if err != nil {
			return newProduct{}, invalid("Field 'stock' must be a whole number.")
		}
	}
	if stock < 0 {
		return newProduct{}, invalid(msgNegativeStock)
	}

	threshold := s.opts.DefaultLowStockThreshold
	if s.thresholdSupplied(in.LowStockThreshold) {
		threshold, err = in.LowStockThreshold.Int()
		if err != nil {
			return newProduct{}, invalid("Field 'lowStockThreshold' must be a whole number.")
		}
		if threshold < 0 {
			return newProduct{}, invalid(msgNegativeThreshold)
		}
	}

	return newProduct{name: name, price: price, stock: stock, threshold: threshold, category: category}, nil
}

// thresholdSupplied decides whether the client threshold replaces the default.
// With ZeroThresholdUsesDefault any falsy value, zero included, keeps the default.
func (s *InventoryService) thresholdSupplied(v Loose) bool {
	if s.opts.ZeroThresholdUsesDefault {
		return v.Truthy()
	}
	if !v.Present() {
		return false
	}
	if text, ok := v.Text(); ok && text == "" {
		return false
	}
	return true
}
