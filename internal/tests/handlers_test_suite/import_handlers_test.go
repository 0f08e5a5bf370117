package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rogerio-castellano/inventory-store/internal/service"
)

func postCSV(r http.Handler, csvContent string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, "products.csv")
	req := httptest.NewRequest(http.MethodPost, "/products/import", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestImportProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()
	addProduct(r, map[string]any{"name": "Widget", "price": 1, "stock": 1, "category": "Hardware"})

	csvData := `name,price,stock,category,lowStockThreshold
Bolt,0.25,100,Hardware,20
Nut,,50,Hardware,
Washer,0.05,200,Hardware,
`
	w := postCSV(r, csvData)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var result service.ImportResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if result.Imported != 2 {
		t.Errorf("expected 2 imported products, got %d", result.Imported)
	}
	if len(result.Errors) != 1 || result.Errors[0].Row != 3 {
		t.Errorf("expected an error on row 3, got %+v", result.Errors)
	}
	if result.Products[0].ID != 2 || result.Products[0].LowStockThreshold != 20 {
		t.Errorf("unexpected first import %+v", result.Products[0])
	}
	if result.Products[1].ID != 3 || result.Products[1].LowStockThreshold != 5 {
		t.Errorf("unexpected second import %+v", result.Products[1])
	}

	products, _ := productStore.Load()
	if len(products) != 3 {
		t.Errorf("expected 3 stored products, got %d", len(products))
	}
}

func TestImportProductsHandler_OutOfRangePriceRow(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := postCSV(r, "name,price,stock,category\nBolt,1e400,1,Hardware\nNut,0.1,5,Hardware\n")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var result service.ImportResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if result.Imported != 1 || len(result.Errors) != 1 || result.Errors[0].Row != 2 {
		t.Errorf("expected row 2 rejected and one import, got %+v", result)
	}
}

func TestImportProductsHandler_MissingColumn(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := postCSV(r, "name,price,stock\nBolt,1,1\n")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeError(w); got != `CSV header is missing column "category"` {
		t.Errorf("unexpected error message %q", got)
	}
}

func TestImportProductsHandler_MissingFile(t *testing.T) {
	r := newRouter()

	w := postRaw(r, "/products/import", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := decodeError(w); got != "Missing file." {
		t.Errorf("unexpected error message %q", got)
	}
}
