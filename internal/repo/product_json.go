package repo

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

// JSONFileOptions configures a JSONFileStore.
type JSONFileOptions struct {
	Path        string
	Policy      PathPolicy
	TempDir     string
	AtomicWrite bool
	Logger      *slog.Logger
}

// JSONFileStore keeps the product list as a single indented JSON array on disk.
// Every Load reads the whole file and every Save overwrites it.
type JSONFileStore struct {
	path   string
	atomic bool
	logger *slog.Logger
}

// NewJSONFileStore resolves the active path according to the policy and makes sure
// a store file exists there.
func NewJSONFileStore(opts JSONFileOptions) (*JSONFileStore, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	active, err := resolvePath(opts.Path, opts.Policy, opts.TempDir, logger)
	if err != nil {
		return nil, err
	}

	s := &JSONFileStore{path: active, atomic: opts.AtomicWrite, logger: logger}
	if err := s.EnsureAvailable(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads and writes.
func (s *JSONFileStore) Path() string {
	return s.path
}

// EnsureAvailable creates the store file with an empty list when it is missing.
func (s *JSONFileStore) EnsureAvailable() error {
	if fileExists(s.path) {
		return nil
	}
	s.logger.Info("creating new data file", "path", s.path)
	if err := os.WriteFile(s.path, emptyStore, 0o644); err != nil {
		return fmt.Errorf("create store %s: %w", s.path, err)
	}
	return nil
}

// Load reads the full product list. On failure it returns an empty list together
// with an error wrapping ErrStoreUnreadable.
func (s *JSONFileStore) Load() ([]models.Product, error) {
	if err := s.EnsureAvailable(); err != nil {
		s.logger.Error("error reading data file", "path", s.path, "error", err)
		return []models.Product{}, fmt.Errorf("%w: %w", ErrStoreUnreadable, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Error("error reading data file", "path", s.path, "error", err)
		return []models.Product{}, fmt.Errorf("%w: %w", ErrStoreUnreadable, err)
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.logger.Error("error parsing data file", "path", s.path, "error", err)
		return []models.Product{}, fmt.Errorf("%w: %w", ErrStoreUnreadable, err)
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Save overwrites the store with the given products.
func (s *JSONFileStore) Save(products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	data, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageFault, err)
	}

	if s.atomic {
		err = writeFileAtomic(s.path, data)
	} else {
		err = os.WriteFile(s.path, data, 0o644)
	}
	if err != nil {
		s.logger.Error("error writing data file", "path", s.path, "error", err)
		return fmt.Errorf("%w: %w", ErrStorageFault, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
