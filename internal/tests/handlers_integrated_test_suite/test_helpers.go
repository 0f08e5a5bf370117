package handlers_integrated_test_suite

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	handler "github.com/rogerio-castellano/inventory-store/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-store/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-store/internal/http/router"
	"github.com/rogerio-castellano/inventory-store/internal/redissvc"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/rogerio-castellano/inventory-store/internal/service"
)

const storeLockKey = "inventory:store-lock"

var (
	quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	lockService *redissvc.RedisService
)

// setupFileStore wires the handlers to a JSON file in a fresh directory,
// serialized through a Redis lease, and returns the file path.
func setupFileStore(t *testing.T) string {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	lockService = redissvc.NewRedisService(rdb)
	t.Cleanup(func() { lockService.Close() })

	store, err := repo.NewJSONFileStore(repo.JSONFileOptions{
		Path:        filepath.Join(t.TempDir(), "data.json"),
		Policy:      repo.PolicyFixed,
		AtomicWrite: true,
		Logger:      quietLogger,
	})
	if err != nil {
		t.Fatalf("could not create store: %v", err)
	}

	lock := lockService.StoreLock(storeLockKey, 5*time.Second, 10*time.Millisecond, quietLogger)
	handler.SetInventoryService(service.NewInventoryService(store, lock, service.DefaultOptions(), quietLogger))
	handler.SetLogger(quietLogger)
	return store.Path()
}

func newRouter(limiter *rl.Limiter) http.Handler {
	return router.NewRouter(router.Options{Logger: quietLogger, Limiter: limiter})
}

// newLimiter returns a limiter whose buckets are reset when the test ends.
func newLimiter(t *testing.T, rps float64, burst int) *rl.Limiter {
	t.Helper()
	limiter := rl.New(rps, burst)
	t.Cleanup(limiter.CleanupAllVisitors)
	return limiter
}

func postJSON(r http.Handler, path string, payload any, headers ...map[string]string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
