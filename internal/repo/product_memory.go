package repo

import (
	"fmt"
	"slices"
	"sync"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// InMemoryProductStore is an in-memory implementation of ProductStore.
type InMemoryProductStore struct {
	mu       sync.Mutex
	products []models.Product
	loadErr  error
	saveErr  error
	saves    int
}

// NewInMemoryProductStore creates a store holding a copy of the given products.
func NewInMemoryProductStore(products ...models.Product) *InMemoryProductStore {
	return &InMemoryProductStore{products: slices.Clone(products)}
}

// Load returns a copy of the stored products.
func (r *InMemoryProductStore) Load() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loadErr != nil {
		return []models.Product{}, fmt.Errorf("%w: %w", ErrStoreUnreadable, r.loadErr)
	}
	out := slices.Clone(r.products)
	if out == nil {
		out = []models.Product{}
	}
	return out, nil
}

// Save replaces the stored products.
func (r *InMemoryProductStore) Save(products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saveErr != nil {
		return fmt.Errorf("%w: %w", ErrStorageFault, r.saveErr)
	}
	r.products = slices.Clone(products)
	r.saves++
	return nil
}

// FailLoad makes subsequent loads fail with err. A nil err clears the fault.
func (r *InMemoryProductStore) FailLoad(err error) {
	r.mu.Lock()
	r.loadErr = err
	r.mu.Unlock()
}

// FailSave makes subsequent saves fail with err. A nil err clears the fault.
func (r *InMemoryProductStore) FailSave(err error) {
	r.mu.Lock()
	r.saveErr = err
	r.mu.Unlock()
}

// Saves returns how many successful saves the store has seen.
func (r *InMemoryProductStore) Saves() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *InMemoryProductStore) Clear() {
	r.mu.Lock()
	r.products = []models.Product{}
	r.saves = 0
	r.loadErr = nil
	r.saveErr = nil
	r.mu.Unlock()
}
