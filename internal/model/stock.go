package model

import "time"

// StockItem represents an individually tracked unit of a serialized product.
type StockItem struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	Serial     string    `json:"serial"`
	ReceivedAt time.Time `json:"received_at"`
	Location   string    `json:"location,omitempty"`
	Status     string    `json:"status"`

	// Joined fields (not always populated).
	ProductModel string `json:"product_model,omitempty"`
}

// Stock item statuses. Only items in the warehouse can be delivered.
const (
	ItemStatusInWarehouse    = "in_warehouse"
	ItemStatusDelivered      = "delivered"
	ItemStatusMaintenance    = "maintenance"
	ItemStatusDecommissioned = "decommissioned"
)

// ItemStatusValid reports whether s is a known stock item status.
func ItemStatusValid(s string) bool {
	switch s {
	case ItemStatusInWarehouse, ItemStatusDelivered, ItemStatusMaintenance, ItemStatusDecommissioned:
		return true
	}
	return false
}

// StockQuantity represents the pooled stock of a non-serialized product.
// There is exactly one row per non-serialized product and the quantity
// never goes below zero.
type StockQuantity struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`

	// Joined fields (not always populated).
	ProductModel    string `json:"product_model,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	BrandName       string `json:"brand_name,omitempty"`
	MinimumQuantity int    `json:"minimum_quantity,omitempty"`
}

// Stock quantity adjustment operations.
const (
	AdjustIncrement = "increment"
	AdjustDecrement = "decrement"
	AdjustSet       = "set"
)
