package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/avillegas/inventario/internal/model"
	"github.com/avillegas/inventario/internal/store"
)

// DeliveriesHandler handles delivery transaction endpoints.
type DeliveriesHandler struct {
	DB *sql.DB
}

type deliveryLineRequest struct {
	ProductID int64  `json:"product_id"`
	ItemID    *int64 `json:"item_id"`
	Quantity  int    `json:"quantity"`
}

type createDeliveryRequest struct {
	UserID      int64                 `json:"user_id"`
	AreaID      int64                 `json:"area_id"`
	Observation string                `json:"observation"`
	Lines       []deliveryLineRequest `json:"lines"`
}

// List handles GET /api/deliveries.
func (h *DeliveriesHandler) List(w http.ResponseWriter, r *http.Request) {
	deliveries, err := store.ListDeliveries(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list deliveries")
		return
	}
	if deliveries == nil {
		deliveries = []model.Delivery{}
	}
	jsonResponse(w, http.StatusOK, deliveries)
}

// Get handles GET /api/deliveries/{id}.
func (h *DeliveriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid delivery id")
		return
	}

	delivery, err := store.GetDelivery(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get delivery")
		return
	}
	jsonResponse(w, http.StatusOK, delivery)
}

// Create handles POST /api/deliveries. All lines commit atomically with
// the stock mutations they imply.
func (h *DeliveriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createDeliveryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := make([]model.DeliveryLineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, model.DeliveryLineInput{
			ProductID: l.ProductID,
			ItemID:    l.ItemID,
			Quantity:  l.Quantity,
		})
	}

	delivery, err := store.CreateDelivery(r.Context(), h.DB, req.UserID, req.AreaID, req.Observation, lines)
	if err != nil {
		storeError(w, err, "failed to create delivery")
		return
	}

	slog.Info("delivery created", "delivery_id", delivery.ID, "user_id", delivery.UserID,
		"area_id", delivery.AreaID, "lines", len(delivery.Lines))
	jsonResponse(w, http.StatusCreated, delivery)
}

// Delete handles DELETE /api/deliveries/{id}. The delivered stock is
// restored as part of the same transaction.
func (h *DeliveriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid delivery id")
		return
	}

	if err := store.DeleteDelivery(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete delivery")
		return
	}

	slog.Info("delivery deleted", "delivery_id", id)
	jsonResponse(w, http.StatusNoContent, nil)
}
