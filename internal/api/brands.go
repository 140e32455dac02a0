package api

import (
	"database/sql"
	"net/http"

	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// BrandsHandler handles product brand endpoints.
type BrandsHandler struct {
	DB *sql.DB
}

// List handles GET /api/brands.
func (h *BrandsHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := store.ListBrands(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list brands")
		return
	}
	if brands == nil {
		brands = []model.Brand{}
	}
	jsonResponse(w, http.StatusOK, brands)
}

// Create handles POST /api/brands.
func (h *BrandsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name is required")
		return
	}

	brand, err := store.CreateBrand(r.Context(), h.DB, req.Name)
	if err != nil {
		storeError(w, err, "failed to create brand")
		return
	}
	jsonResponse(w, http.StatusCreated, brand)
}

// Update handles PUT /api/brands/{id}.
func (h *BrandsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := store.UpdateBrand(r.Context(), h.DB, id, req.Name); err != nil {
		storeError(w, err, "failed to update brand")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "brand updated"})
}

// Delete handles DELETE /api/brands/{id}.
func (h *BrandsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid brand id")
		return
	}

	if err := store.DeleteBrand(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete brand")
		return
	}
	jsonResponse(w, http.StatusNoContent, nil)
}
