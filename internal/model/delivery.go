package model

import "time"

// Delivery represents a transactional hand-out of stock to a user/area.
// It owns its lines: they are created and deleted together with the
// header and the matching stock mutations, always in one transaction.
type Delivery struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	AreaID      int64     `json:"area_id"`
	DeliveredAt time.Time `json:"delivered_at"`
	Observation string    `json:"observation,omitempty"`

	// Joined fields (not always populated).
	UserName string `json:"user_name,omitempty"`
	AreaName string `json:"area_name,omitempty"`

	// Lines are populated by single-delivery lookups only.
	Lines []DeliveryLine `json:"lines,omitempty"`
}

// DeliveryLine represents one product position within a delivery.
// ItemID is set only for serialized products, in which case Quantity
// is always 1.
type DeliveryLine struct {
	ID         int64  `json:"id"`
	DeliveryID int64  `json:"delivery_id"`
	ProductID  int64  `json:"product_id"`
	ItemID     *int64 `json:"item_id,omitempty"`
	Quantity   int    `json:"quantity"`

	// Joined fields (not always populated).
	ProductModel string `json:"product_model,omitempty"`
	Serial       string `json:"serial,omitempty"`
}

// DeliveryLineInput is the validated per-line input for creating a delivery.
type DeliveryLineInput struct {
	ProductID int64  `json:"product_id"`
	ItemID    *int64 `json:"item_id,omitempty"`
	Quantity  int    `json:"quantity"`
}
