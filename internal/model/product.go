package model

import "time"

// Product represents a product definition. IsSerialized determines the
// stock-tracking model: serialized products are tracked as individual
// stock items by serial number, non-serialized products as a single
// quantity pool. The flag is set at creation and never changed.
type Product struct {
	ID              int64     `json:"id"`
	CategoryID      int64     `json:"category_id"`
	BrandID         int64     `json:"brand_id"`
	Model           string    `json:"model"`
	SKU             string    `json:"sku,omitempty"`
	Description     string    `json:"description,omitempty"`
	MinimumQuantity int       `json:"minimum_quantity"`
	IsSerialized    bool      `json:"is_serialized"`
	ImageMime       string    `json:"image_mime,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Joined fields (not always populated).
	CategoryName string `json:"category_name,omitempty"`
	BrandName    string `json:"brand_name,omitempty"`
}
