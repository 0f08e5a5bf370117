package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rogerio-castellano/inventory-store/internal/models"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
)

// Options tunes business rules of the inventory service.
type Options struct {
	// DegradeOnReadFault makes listings return an empty inventory instead of an
	// error when the store cannot be read.
	DegradeOnReadFault       bool
	DefaultLowStockThreshold int
	ZeroThresholdUsesDefault bool
}

// DefaultOptions mirrors the behavior clients of the service rely on.
func DefaultOptions() Options {
	return Options{
		DegradeOnReadFault:       true,
		DefaultLowStockThreshold: 5,
		ZeroThresholdUsesDefault: true,
	}
}

// InventoryService applies the inventory rules on top of a ProductStore.
type InventoryService struct {
	store  repo.ProductStore
	lock   Locker
	opts   Options
	logger *slog.Logger
}

// NewInventoryService creates the service. A nil lock defaults to a LocalLocker.
func NewInventoryService(store repo.ProductStore, lock Locker, opts Options, logger *slog.Logger) *InventoryService {
	if lock == nil {
		lock = NewLocalLocker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InventoryService{store: store, lock: lock, opts: opts, logger: logger}
}

// ListProducts returns every product in insertion order.
func (s *InventoryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.Load()
	if err != nil {
		if s.opts.DegradeOnReadFault && errors.Is(err, repo.ErrStoreUnreadable) {
			s.logger.WarnContext(ctx, "serving empty inventory after read failure", "error", err)
			return []models.Product{}, nil
		}
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// LowStockProducts returns the products whose stock is below their threshold.
func (s *InventoryService) LowStockProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	low := []models.Product{}
	for _, p := range products {
		if p.LowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

// UpdateStock sets the stock of one product and persists the whole inventory.
func (s *InventoryService) UpdateStock(ctx context.Context, in UpdateStockInput) (models.Product, error) {
	change, err := validateStockUpdate(in)
	if err != nil {
		return models.Product{}, err
	}

	var updated models.Product
	err = s.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		idx := indexOf(products, change.id)
		if idx == -1 {
			return nil, ErrProductNotFound
		}
		products[idx].Stock = change.quantity
		updated = products[idx]
		return products, nil
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("update stock of product %d: %w", change.id, err)
	}

	if updated.LowStock() {
		s.logger.WarnContext(ctx, "⚠️ ALERT: product is below threshold",
			"id", updated.ID, "name", updated.Name,
			"stock", updated.Stock, "threshold", updated.LowStockThreshold)
	}
	return updated, nil
}

// AddProduct registers a new product with the next free id.
func (s *InventoryService) AddProduct(ctx context.Context, in AddProductInput) (models.Product, error) {
	np, err := s.validateNewProduct(in)
	if err != nil {
		return models.Product{}, err
	}

	var created models.Product
	err = s.mutate(ctx, func(products []models.Product) ([]models.Product, error) {
		created = models.Product{
			ID:                nextID(products),
			Name:              np.name,
			Price:             np.price,
			Stock:             np.stock,
			LowStockThreshold: np.threshold,
			Category:          np.category,
		}
		return append(products, created), nil
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("add product: %w", err)
	}

	s.logger.InfoContext(ctx, "product added", "id", created.ID, "name", created.Name)
	return created, nil
}

// mutate runs load, fn and save as one critical section. Nothing is written when
// the store is unreadable, fn fails or the lock lapsed in the meantime.
func (s *InventoryService) mutate(ctx context.Context, fn func([]models.Product) ([]models.Product, error)) error {
	lease, err := s.lock.Lock(ctx)
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer lease.Release()

	products, err := s.store.Load()
	if err != nil {
		return err
	}

	products, err = fn(products)
	if err != nil {
		return err
	}

	if err := lease.Check(ctx); err != nil {
		s.logger.ErrorContext(ctx, "store lock lost before save, discarding changes", "error", err)
		return fmt.Errorf("store lock lost: %w", err)
	}
	return s.store.Save(products)
}

func indexOf(products []models.Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func nextID(products []models.Product) int {
	maxID := 0
	for _, p := range products {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}
