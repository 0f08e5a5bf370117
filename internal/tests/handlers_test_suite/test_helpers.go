package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	handler "github.com/rogerio-castellano/inventory-store/internal/http/handlers"
	"github.com/rogerio-castellano/inventory-store/internal/http/router"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/rogerio-castellano/inventory-store/internal/service"
)

var (
	productStore *repo.InMemoryProductStore
	quietLogger  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func init() {
	setupTestStore()
}

func setupTestStore() {
	productStore = repo.NewInMemoryProductStore()
	handler.SetInventoryService(service.NewInventoryService(productStore, nil, service.DefaultOptions(), quietLogger))
	handler.SetLogger(quietLogger)
}

func newRouter() http.Handler {
	return router.NewRouter(router.Options{Logger: quietLogger})
}

func clearAllProducts() {
	productStore.Clear()
}

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	return postRaw(r, path, string(body))
}

func postRaw(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func addProduct(r http.Handler, p map[string]any) *httptest.ResponseRecorder {
	return postJSON(r, "/add-product", p)
}

func updateStock(r http.Handler, payload map[string]any) *httptest.ResponseRecorder {
	return postJSON(r, "/update-stock", payload)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func decodeError(w *httptest.ResponseRecorder) string {
	var resp handler.ErrorResponse
	_ = json.NewDecoder(w.Body).Decode(&resp)
	return resp.Error
}
