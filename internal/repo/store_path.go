package repo

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// PathPolicy decides where the store file lives.
type PathPolicy string

const (
	// PolicyFixed always uses the configured path.
	PolicyFixed PathPolicy = "fixed"
	// PolicyFallback moves the store to the temp directory when the configured path is not writable.
	PolicyFallback PathPolicy = "fallback"
)

var emptyStore = []byte("[]")

// resolvePath picks the active store path once. With PolicyFallback an unwritable
// canonical path is replaced by a copy under tempDir.
func resolvePath(canonical string, policy PathPolicy, tempDir string, logger *slog.Logger) (string, error) {
	switch policy {
	case PolicyFixed, "":
		return canonical, nil
	case PolicyFallback:
	default:
		return "", fmt.Errorf("unknown store path policy %q", policy)
	}

	if writable(canonical) {
		return canonical, nil
	}

	if tempDir == "" {
		tempDir = os.TempDir()
	}
	fallback := filepath.Join(tempDir, filepath.Base(canonical))

	seed, err := os.ReadFile(canonical)
	switch {
	case err == nil:
		if err := os.WriteFile(fallback, seed, 0o644); err != nil {
			return "", fmt.Errorf("seed fallback store %s: %w", fallback, err)
		}
		logger.Warn("store path not writable, copied data to temp location",
			"canonical", canonical, "active", fallback)
	case fileExists(fallback):
		logger.Warn("store path not writable, reusing existing temp store",
			"canonical", canonical, "active", fallback)
	default:
		if err := os.WriteFile(fallback, emptyStore, 0o644); err != nil {
			return "", fmt.Errorf("create fallback store %s: %w", fallback, err)
		}
		logger.Warn("store path not writable, created empty temp store",
			"canonical", canonical, "active", fallback)
	}
	return fallback, nil
}

// writable reports whether the file at path can be overwritten and its
// directory accepts new files.
func writable(path string) bool {
	if fileExists(path) {
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return false
		}
		f.Close()
	}

	check, err := os.CreateTemp(filepath.Dir(path), ".write-check-*")
	if err != nil {
		return false
	}
	name := check.Name()
	check.Close()
	os.Remove(name)
	return true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
