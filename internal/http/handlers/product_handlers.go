package handlers

import (
	"errors"
	"net/http"

	"github.com/rogerio-castellano/inventory-store/internal/service"
)

const (
	msgInvalidBody     = "Invalid JSON body."
	msgProductNotFound = "Product not found."
	msgReadFailed      = "Failed to read inventory data."
	msgUpdateFailed    = "Failed to update inventory."
	msgAddFailed       = "Failed to add product."
)

// GetProductsHandler godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := inventory.ListProducts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "could not list products", "error", err)
		writeError(w, r, http.StatusInternalServerError, msgReadFailed)
		return
	}
	respond(w, r, http.StatusOK, products)
}

// GetLowStockHandler godoc
// @Summary List products below their low stock threshold
// @Tags products
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /products/low-stock [get]
func GetLowStockHandler(w http.ResponseWriter, r *http.Request) {
	products, err := inventory.LowStockProducts(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "could not list low stock products", "error", err)
		writeError(w, r, http.StatusInternalServerError, msgReadFailed)
		return
	}
	respond(w, r, http.StatusOK, products)
}

// UpdateStockHandler godoc
// @Summary Set the stock quantity of a product
// @Tags inventory
// @Accept json
// @Produce json
// @Param update body UpdateStockRequest true "Product id and new quantity"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /update-stock [post]
func UpdateStockHandler(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateStockInput
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	product, err := inventory.UpdateStock(r.Context(), req)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.As(err, &ve):
			writeError(w, r, http.StatusBadRequest, ve.Message)
		case errors.Is(err, service.ErrProductNotFound):
			writeError(w, r, http.StatusNotFound, msgProductNotFound)
		default:
			logger.ErrorContext(r.Context(), "could not update stock", "error", err)
			writeError(w, r, http.StatusInternalServerError, msgUpdateFailed)
		}
		return
	}

	respond(w, r, http.StatusOK, product)
}

// AddProductHandler godoc
// @Summary Register a new product
// @Description The id is assigned by the server. lowStockThreshold defaults to 5.
// @Tags products
// @Accept json
// @Produce json
// @Param product body AddProductRequest true "Product to add"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /add-product [post]
func AddProductHandler(w http.ResponseWriter, r *http.Request) {
	var req service.AddProductInput
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, r, http.StatusBadRequest, msgInvalidBody)
		return
	}

	product, err := inventory.AddProduct(r.Context(), req)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeError(w, r, http.StatusBadRequest, ve.Message)
			return
		}
		logger.ErrorContext(r.Context(), "could not add product", "error", err)
		writeError(w, r, http.StatusInternalServerError, msgAddFailed)
		return
	}

	respond(w, r, http.StatusOK, product)
}
