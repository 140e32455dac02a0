package api

import (
	"database/sql"
	"net/http"

	"github.com/avillegas/inventario/internal/imaging"
	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// maxImageUpload limits product photo uploads to 10 MiB.
const maxImageUpload = 10 << 20

// ProductsHandler handles product catalog endpoints.
type ProductsHandler struct {
	DB *sql.DB
}

type productRequest struct {
	CategoryID      int64  `json:"category_id"`
	BrandID         int64  `json:"brand_id"`
	Model           string `json:"model"`
	SKU             string `json:"sku"`
	Description     string `json:"description"`
	MinimumQuantity int    `json:"minimum_quantity"`
	IsSerialized    bool   `json:"is_serialized"`
}

// List handles GET /api/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := store.ListProducts(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list products")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, products)
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CategoryID <= 0 || req.BrandID <= 0 || req.Model == "" {
		jsonError(w, http.StatusBadRequest, "category_id, brand_id and model are required")
		return
	}
	if req.MinimumQuantity < 0 {
		jsonError(w, http.StatusBadRequest, "minimum_quantity must not be negative")
		return
	}

	product, err := store.CreateProduct(r.Context(), h.DB, model.Product{
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		Model:           req.Model,
		SKU:             req.SKU,
		Description:     req.Description,
		MinimumQuantity: req.MinimumQuantity,
		IsSerialized:    req.IsSerialized,
	})
	if err != nil {
		storeError(w, err, "failed to create product")
		return
	}
	jsonResponse(w, http.StatusCreated, product)
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := store.GetProduct(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get product")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, product)
}

// Update handles PUT /api/products/{id}. The serialized flag cannot be
// changed after creation.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CategoryID <= 0 || req.BrandID <= 0 || req.Model == "" {
		jsonError(w, http.StatusBadRequest, "category_id, brand_id and model are required")
		return
	}
	if req.MinimumQuantity < 0 {
		jsonError(w, http.StatusBadRequest, "minimum_quantity must not be negative")
		return
	}

	err = store.UpdateProduct(r.Context(), h.DB, id, model.Product{
		CategoryID:      req.CategoryID,
		BrandID:         req.BrandID,
		Model:           req.Model,
		SKU:             req.SKU,
		Description:     req.Description,
		MinimumQuantity: req.MinimumQuantity,
	})
	if err != nil {
		storeError(w, err, "failed to update product")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "product updated"})
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := store.DeleteProduct(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete product")
		return
	}
	jsonResponse(w, http.StatusNoContent, nil)
}

// UploadImage handles PUT /api/products/{id}/image. The photo is
// normalized (downscaled and re-encoded) before storage.
func (h *ProductsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxImageUpload)
	defer body.Close()

	image, mime, err := imaging.Normalize(body)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid or unsupported image")
		return
	}

	if err := store.SetProductImage(r.Context(), h.DB, id, image, mime); err != nil {
		storeError(w, err, "failed to store product image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image updated"})
}

// GetImage handles GET /api/products/{id}/image.
func (h *ProductsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	image, mime, err := store.GetProductImage(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get product image")
		return
	}
	if len(image) == 0 {
		jsonError(w, http.StatusNotFound, "product has no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.WriteHeader(http.StatusOK)
	w.Write(image)
}
