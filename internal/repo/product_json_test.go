package repo

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/inventory-store/internal/models"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestStore(t *testing.T, atomic bool) *JSONFileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	s, err := NewJSONFileStore(JSONFileOptions{Path: path, Policy: PolicyFixed, AtomicWrite: atomic, Logger: quietLogger})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}
	return s
}

func TestNewJSONFileStore_CreatesEmptyFile(t *testing.T) {
	s := newTestStore(t, true)

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("expected store file to exist: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty array, got %q", data)
	}
}

func TestNewJSONFileStore_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	existing := `[{"id":4,"name":"Bolt","price":0.5,"stock":100,"lowStockThreshold":10,"category":"Hardware"}]`
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewJSONFileStore(JSONFileOptions{Path: path, Policy: PolicyFixed, Logger: quietLogger})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}

	products, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 4 || products[0].Name != "Bolt" {
		t.Errorf("unexpected products: %+v", products)
	}
}

func TestJSONFileStore_SaveAndLoad(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		name := "in place"
		if atomic {
			name = "atomic"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, atomic)
			want := []models.Product{
				{ID: 1, Name: "Widget", Price: 9.99, Stock: 10, LowStockThreshold: 5, Category: "Hardware"},
				{ID: 2, Name: "Gadget", Price: 0, Stock: 0, LowStockThreshold: 3, Category: "Toys"},
			}

			if err := s.Save(want); err != nil {
				t.Fatalf("unexpected save error: %v", err)
			}

			got, err := s.Load()
			if err != nil {
				t.Fatalf("unexpected load error: %v", err)
			}
			if len(got) != len(want) {
				t.Fatalf("expected %d products, got %d", len(want), len(got))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("product %d: expected %+v, got %+v", i, want[i], got[i])
				}
			}
		})
	}
}

func TestJSONFileStore_SaveWritesIndentedArray(t *testing.T) {
	s := newTestStore(t, true)

	err := s.Save([]models.Product{{ID: 1, Name: "Widget", Price: 9.99, Stock: 3, LowStockThreshold: 5, Category: "Hardware"}})
	if err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}

	data, _ := os.ReadFile(s.Path())
	expected := `[
  {
    "id": 1,
    "name": "Widget",
    "price": 9.99,
    "stock": 3,
    "lowStockThreshold": 5,
    "category": "Hardware"
  }
]`
	if string(data) != expected {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestJSONFileStore_SaveEmptyWritesArray(t *testing.T) {
	s := newTestStore(t, true)

	if err := s.Save(nil); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	data, _ := os.ReadFile(s.Path())
	if string(data) != "[]" {
		t.Errorf("expected [] for an empty store, got %q", data)
	}
}

func TestJSONFileStore_LoadCorruptFile(t *testing.T) {
	s := newTestStore(t, true)
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	products, err := s.Load()
	if !errors.Is(err, ErrStoreUnreadable) {
		t.Fatalf("expected ErrStoreUnreadable, got %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected an empty, non-nil list, got %#v", products)
	}
}

func TestJSONFileStore_LoadRecreatesMissingFile(t *testing.T) {
	s := newTestStore(t, true)
	if err := os.Remove(s.Path()); err != nil {
		t.Fatal(err)
	}

	products, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected no products, got %d", len(products))
	}
	if data, err := os.ReadFile(s.Path()); err != nil || string(data) != "[]" {
		t.Errorf("expected store file to be recreated, got %q (%v)", data, err)
	}
}

func TestJSONFileStore_SaveFailure(t *testing.T) {
	for _, atomic := range []bool{true, false} {
		dir := t.TempDir()
		s, err := NewJSONFileStore(JSONFileOptions{Path: filepath.Join(dir, "data.json"), AtomicWrite: atomic, Logger: quietLogger})
		if err != nil {
			t.Fatal(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Fatal(err)
		}

		err = s.Save([]models.Product{{ID: 1, Name: "Widget"}})
		if !errors.Is(err, ErrStorageFault) {
			t.Errorf("atomic=%v: expected ErrStorageFault, got %v", atomic, err)
		}
	}
}

func TestNewJSONFileStore_FallbackWhenDirectoryMissing(t *testing.T) {
	base := t.TempDir()
	tempDir := t.TempDir()
	canonical := filepath.Join(base, "read-only", "data.json")

	s, err := NewJSONFileStore(JSONFileOptions{Path: canonical, Policy: PolicyFallback, TempDir: tempDir, Logger: quietLogger})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}

	expected := filepath.Join(tempDir, "data.json")
	if s.Path() != expected {
		t.Fatalf("expected active path %s, got %s", expected, s.Path())
	}
	if data, _ := os.ReadFile(expected); string(data) != "[]" {
		t.Errorf("expected fallback store to be seeded empty, got %q", data)
	}
}

func TestNewJSONFileStore_FallbackCopiesCanonicalData(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	dir := t.TempDir()
	tempDir := t.TempDir()
	canonical := filepath.Join(dir, "data.json")
	seed := `[{"id":7,"name":"Nut","price":0.1,"stock":50,"lowStockThreshold":5,"category":"Hardware"}]`
	if err := os.WriteFile(canonical, []byte(seed), 0o444); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	s, err := NewJSONFileStore(JSONFileOptions{Path: canonical, Policy: PolicyFallback, TempDir: tempDir, Logger: quietLogger})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}
	if s.Path() == canonical {
		t.Fatal("expected store to move away from the read-only path")
	}

	products, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if len(products) != 1 || products[0].ID != 7 {
		t.Errorf("expected the canonical data to be copied, got %+v", products)
	}
}

func TestNewJSONFileStore_FallbackKeepsWritablePath(t *testing.T) {
	canonical := filepath.Join(t.TempDir(), "data.json")

	s, err := NewJSONFileStore(JSONFileOptions{Path: canonical, Policy: PolicyFallback, TempDir: t.TempDir(), Logger: quietLogger})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}
	if s.Path() != canonical {
		t.Errorf("expected canonical path %s, got %s", canonical, s.Path())
	}
}

func TestNewJSONFileStore_Invalid(t *testing.T) {
	if _, err := NewJSONFileStore(JSONFileOptions{Logger: quietLogger}); err == nil {
		t.Error("expected an error for an empty path")
	}
	path := filepath.Join(t.TempDir(), "data.json")
	if _, err := NewJSONFileStore(JSONFileOptions{Path: path, Policy: "mirror", Logger: quietLogger}); err == nil {
		t.Error("expected an error for an unknown policy")
	}
}
