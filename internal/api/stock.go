package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// StockHandler handles serialized stock items and quantity pools.
type StockHandler struct {
	DB *sql.DB
}

type stockItemRequest struct {
	ProductID int64  `json:"product_id"`
	Serial    string `json:"serial"`
	Location  string `json:"location"`
	Status    string `json:"status"`
}

type adjustQuantityRequest struct {
	Operation string `json:"operation"`
	Quantity  int    `json:"quantity"`
}

// ListItems handles GET /api/stock/items. Supports ?product_id= and
// ?status= filters.
func (h *StockHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	var productID int64
	if v := r.URL.Query().Get("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid product_id filter")
			return
		}
		productID = id
	}

	status := r.URL.Query().Get("status")
	if status != "" && !model.ItemStatusValid(status) {
		jsonError(w, http.StatusBadRequest, "unknown status filter")
		return
	}

	items, err := store.ListStockItems(r.Context(), h.DB, productID, status)
	if err != nil {
		storeError(w, err, "failed to list stock items")
		return
	}
	if items == nil {
		items = []model.StockItem{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// CreateItem handles POST /api/stock/items.
func (h *StockHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req stockItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ProductID <= 0 || req.Serial == "" {
		jsonError(w, http.StatusBadRequest, "product_id and serial are required")
		return
	}

	item, err := store.CreateStockItem(r.Context(), h.DB, req.ProductID, req.Serial, req.Location, req.Status)
	if err != nil {
		storeError(w, err, "failed to create stock item")
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// GetItem handles GET /api/stock/items/{id}.
func (h *StockHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid stock item id")
		return
	}

	item, err := store.GetStockItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get stock item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "stock item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// UpdateItem handles PUT /api/stock/items/{id}.
func (h *StockHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid stock item id")
		return
	}

	var req stockItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Serial == "" || req.Status == "" {
		jsonError(w, http.StatusBadRequest, "serial and status are required")
		return
	}

	if err := store.UpdateStockItem(r.Context(), h.DB, id, req.Serial, req.Location, req.Status); err != nil {
		storeError(w, err, "failed to update stock item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "stock item updated"})
}

// DeleteItem handles DELETE /api/stock/items/{id}.
func (h *StockHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid stock item id")
		return
	}

	if err := store.DeleteStockItem(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete stock item")
		return
	}
	jsonResponse(w, http.StatusNoContent, nil)
}

// ListQuantities handles GET /api/stock/quantities.
func (h *StockHandler) ListQuantities(w http.ResponseWriter, r *http.Request) {
	quantities, err := store.ListStockQuantities(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list stock quantities")
		return
	}
	if quantities == nil {
		quantities = []model.StockQuantity{}
	}
	jsonResponse(w, http.StatusOK, quantities)
}

// ListLowStock handles GET /api/stock/low. Returns quantity pools below
// their product's minimum.
func (h *StockHandler) ListLowStock(w http.ResponseWriter, r *http.Request) {
	quantities, err := store.ListLowStock(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list low stock")
		return
	}
	if quantities == nil {
		quantities = []model.StockQuantity{}
	}
	jsonResponse(w, http.StatusOK, quantities)
}

// AdjustQuantity handles PUT /api/stock/quantities/{id} where {id} is
// the product ID.
func (h *StockHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req adjustQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sq, err := store.AdjustStockQuantity(r.Context(), h.DB, productID, req.Operation, req.Quantity)
	if err != nil {
		storeError(w, err, "failed to adjust stock quantity")
		return
	}
	jsonResponse(w, http.StatusOK, sq)
}
