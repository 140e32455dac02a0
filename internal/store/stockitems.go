package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// CreateStockItem registers a serialized unit entering the warehouse.
// The product must exist and be serialized; quantity-pool products are
// managed through stock quantities instead.
func CreateStockItem(ctx context.Context, db *sql.DB, productID int64, serial, location, status string) (*model.StockItem, error) {
	if status == "" {
		status = model.ItemStatusInWarehouse
	}
	if !model.ItemStatusValid(status) {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown stock item status %q", status)}
	}

	var serialized bool
	err := db.QueryRowContext(ctx,
		`SELECT is_serialized FROM products WHERE id = ?`, productID,
	).Scan(&serialized)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "product", ID: productID}
	}
	if err != nil {
		return nil, fmt.Errorf("checking product: %w", err)
	}
	if !serialized {
		return nil, &ValidationError{Message: "product is not serialized; manage its stock by quantity"}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO stock_items (product_id, serial, location, status) VALUES (?, ?, ?, ?)`,
		productID, serial, nullable(location), status,
	)
	if err != nil {
		return nil, fmt.Errorf("creating stock item: %w",
			mapConstraintErr(err, "a stock item with that serial already exists", "referenced product does not exist"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting stock item id: %w", err)
	}

	return GetStockItem(ctx, db, id)
}

// GetStockItem returns a stock item by ID with its product model.
func GetStockItem(ctx context.Context, db *sql.DB, id int64) (*model.StockItem, error) {
	si := &model.StockItem{}
	var location sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT si.id, si.product_id, si.serial, si.received_at, si.location, si.status,
		        p.model AS product_model
		 FROM stock_items si
		 JOIN products p ON p.id = si.product_id
		 WHERE si.id = ?`, id,
	).Scan(&si.ID, &si.ProductID, &si.Serial, &si.ReceivedAt, &location, &si.Status, &si.ProductModel)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock item: %w", err)
	}
	si.Location = location.String
	return si, nil
}

// ListStockItems returns stock items newest-ingress-first, optionally
// filtered by product and/or status.
func ListStockItems(ctx context.Context, db *sql.DB, productID int64, status string) ([]model.StockItem, error) {
	query := `SELECT si.id, si.product_id, si.serial, si.received_at, si.location, si.status,
	                 p.model AS product_model
	          FROM stock_items si
	          JOIN products p ON p.id = si.product_id
	          WHERE 1=1`
	var args []any

	if productID > 0 {
		query += ` AND si.product_id = ?`
		args = append(args, productID)
	}
	if status != "" {
		query += ` AND si.status = ?`
		args = append(args, status)
	}

	query += ` ORDER BY si.received_at DESC, si.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing stock items: %w", err)
	}
	defer rows.Close()

	var items []model.StockItem
	for rows.Next() {
		var si model.StockItem
		var location sql.NullString
		if err := rows.Scan(&si.ID, &si.ProductID, &si.Serial, &si.ReceivedAt, &location, &si.Status, &si.ProductModel); err != nil {
			return nil, fmt.Errorf("scanning stock item: %w", err)
		}
		si.Location = location.String
		items = append(items, si)
	}
	return items, rows.Err()
}

// UpdateStockItem updates a stock item's serial, location, and status.
func UpdateStockItem(ctx context.Context, db *sql.DB, id int64, serial, location, status string) error {
	if !model.ItemStatusValid(status) {
		return &ValidationError{Message: fmt.Sprintf("unknown stock item status %q", status)}
	}

	result, err := db.ExecContext(ctx,
		`UPDATE stock_items SET serial = ?, location = ?, status = ? WHERE id = ?`,
		serial, nullable(location), status, id,
	)
	if err != nil {
		return fmt.Errorf("updating stock item: %w",
			mapConstraintErr(err, "a stock item with that serial already exists", "invalid reference"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "stock item", ID: id}
	}
	return nil
}

// DeleteStockItem deletes a stock item. Fails with a conflict if
// delivery lines reference it.
func DeleteStockItem(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM stock_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stock item: %w",
			mapConstraintErr(err, "conflicting stock item", "stock item is referenced by deliveries"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "stock item", ID: id}
	}
	return nil
}
