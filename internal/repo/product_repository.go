package repo

import (
	"errors"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

var (
	// ErrStoreUnreadable is returned by Load when the backing store cannot be read or parsed.
	ErrStoreUnreadable = errors.New("inventory store unreadable")
	// ErrStorageFault is returned by Save when the store could not be persisted.
	ErrStorageFault = errors.New("inventory store write failed")
)

// ProductStore loads and saves the whole product list at once.
type ProductStore interface {
	Load() ([]models.Product, error)
	Save(products []models.Product) error
}
