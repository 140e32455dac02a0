package api

import (
	"database/sql"
	"net/http"

	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// AreasHandler handles destination area endpoints.
type AreasHandler struct {
	DB *sql.DB
}

type areaRequest struct {
	Name       string `json:"name"`
	Location   string `json:"location"`
	CostCenter string `json:"cost_center"`
}

// List handles GET /api/areas.
func (h *AreasHandler) List(w http.ResponseWriter, r *http.Request) {
	areas, err := store.ListAreas(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list areas")
		return
	}
	if areas == nil {
		areas = []model.Area{}
	}
	jsonResponse(w, http.StatusOK, areas)
}

// Create handles POST /api/areas.
func (h *AreasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req areaRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name is required")
		return
	}

	area, err := store.CreateArea(r.Context(), h.DB, req.Name, req.Location, req.CostCenter)
	if err != nil {
		storeError(w, err, "failed to create area")
		return
	}
	jsonResponse(w, http.StatusCreated, area)
}

// Get handles GET /api/areas/{id}.
func (h *AreasHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	area, err := store.GetArea(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get area")
		return
	}
	if area == nil {
		jsonError(w, http.StatusNotFound, "area not found")
		return
	}
	jsonResponse(w, http.StatusOK, area)
}

// Update handles PUT /api/areas/{id}.
func (h *AreasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	var req areaRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name is required")
		return
	}

	if err := store.UpdateArea(r.Context(), h.DB, id, req.Name, req.Location, req.CostCenter); err != nil {
		storeError(w, err, "failed to update area")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "area updated"})
}

// Delete handles DELETE /api/areas/{id}.
func (h *AreasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	if err := store.DeleteArea(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete area")
		return
	}
	jsonResponse(w, http.StatusNoContent, nil)
}
