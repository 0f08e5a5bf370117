package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/inventory-store/internal/service"
)

var requiredColumns = []string{"name", "price", "stock", "category"}

func parseCSV(r io.Reader) ([]service.AddProductInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header")
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", col)
		}
	}

	cell := func(record []string, column string) service.Loose {
		i, ok := index[strings.ToLower(column)]
		if !ok || i >= len(record) || strings.TrimSpace(record[i]) == "" {
			return nil
		}
		raw, _ := json.Marshal(strings.TrimSpace(record[i]))
		return service.Loose(raw)
	}

	reader.FieldsPerRecord = -1
	var rows []service.AddProductInput
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %v", err)
		}

		rows = append(rows, service.AddProductInput{
			Name:              cell(record, "name"),
			Price:             cell(record, "price"),
			Stock:             cell(record, "stock"),
			Category:          cell(record, "category"),
			LowStockThreshold: cell(record, "lowStockThreshold"),
		})
	}
	return rows, nil
}

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Columns: name, price, stock, category and optionally lowStockThreshold.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /products/import [post]
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Missing file.")
		return
	}
	defer file.Close()

	rows, err := parseCSV(file)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// The header is row 1.
	result, err := inventory.ImportProducts(r.Context(), rows, 2)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeError(w, r, http.StatusBadRequest, ve.Message)
			return
		}
		logger.ErrorContext(r.Context(), "could not import products", "error", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to import products.")
		return
	}

	respond(w, r, http.StatusOK, result)
}
