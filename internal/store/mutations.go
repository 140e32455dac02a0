package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// Stock mutations are the per-line side effects of creating or deleting
// a delivery. They always run inside the caller's transaction so that a
// failure in any line undoes every mutation issued before it.

// consumeStock takes one delivery line's worth of stock. For serialized
// products this is the conditional transition of the referenced item
// from in_warehouse to delivered; a transition that affects zero rows
// means the item was taken by someone else (or was never available) and
// is a conflict. For quantity products it is a single clamped relative
// decrement: over-delivery drains the pool to zero without failing.
func consumeStock(ctx context.Context, tx *sql.Tx, productID int64, serialized bool, itemID *int64, quantity int) error {
	if serialized {
		if itemID == nil || quantity != 1 {
			return &ValidationError{Message: "serialized products require a stock item and quantity of 1"}
		}

		result, err := tx.ExecContext(ctx,
			`UPDATE stock_items SET status = ? WHERE id = ? AND status = ?`,
			model.ItemStatusDelivered, *itemID, model.ItemStatusInWarehouse,
		)
		if err != nil {
			return fmt.Errorf("marking stock item delivered: %w", err)
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return &ConflictError{Message: fmt.Sprintf("stock item %d is not available for delivery", *itemID)}
		}
		return nil
	}

	if itemID != nil {
		return &ValidationError{Message: "non-serialized products must not reference a stock item"}
	}
	if quantity <= 0 {
		return &ValidationError{Message: "delivered quantity must be positive"}
	}

	_, err := tx.ExecContext(ctx,
		`UPDATE stock_quantities SET quantity = MAX(0, quantity - ?) WHERE product_id = ?`,
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("decrementing stock quantity: %w", err)
	}
	return nil
}

// restoreStock is the exact inverse of consumeStock, used when a
// delivery is deleted. The serialized path is unconditional: whatever
// state the item is in now, it goes back to the warehouse. The quantity
// path re-adds the delivered amount, creating the pool row if the
// product's row has since gone missing.
func restoreStock(ctx context.Context, tx *sql.Tx, productID int64, serialized bool, itemID *int64, quantity int) error {
	if serialized && itemID != nil {
		_, err := tx.ExecContext(ctx,
			`UPDATE stock_items SET status = ? WHERE id = ?`,
			model.ItemStatusInWarehouse, *itemID,
		)
		if err != nil {
			return fmt.Errorf("returning stock item to warehouse: %w", err)
		}
		return nil
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO stock_quantities (product_id, quantity) VALUES (?, ?)
		 ON CONFLICT (product_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("incrementing stock quantity: %w", err)
	}
	return nil
}
