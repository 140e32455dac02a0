package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// ListStockQuantities returns the quantity pools of all non-serialized
// products with product, category, and brand names, ordered by model.
func ListStockQuantities(ctx context.Context, db *sql.DB) ([]model.StockQuantity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT sq.product_id, sq.quantity, p.model, p.minimum_quantity,
		        c.name AS category_name, b.name AS brand_name
		 FROM stock_quantities sq
		 JOIN products p ON p.id = sq.product_id
		 JOIN categories c ON c.id = p.category_id
		 JOIN brands b ON b.id = p.brand_id
		 ORDER BY p.model`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing stock quantities: %w", err)
	}
	defer rows.Close()

	return scanStockQuantities(rows)
}

// ListLowStock returns quantity pools that have fallen below their
// product's minimum-quantity threshold.
func ListLowStock(ctx context.Context, db *sql.DB) ([]model.StockQuantity, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT sq.product_id, sq.quantity, p.model, p.minimum_quantity,
		        c.name AS category_name, b.name AS brand_name
		 FROM stock_quantities sq
		 JOIN products p ON p.id = sq.product_id
		 JOIN categories c ON c.id = p.category_id
		 JOIN brands b ON b.id = p.brand_id
		 WHERE sq.quantity < p.minimum_quantity
		 ORDER BY p.model`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing low stock: %w", err)
	}
	defer rows.Close()

	return scanStockQuantities(rows)
}

func scanStockQuantities(rows *sql.Rows) ([]model.StockQuantity, error) {
	var quantities []model.StockQuantity
	for rows.Next() {
		var sq model.StockQuantity
		if err := rows.Scan(&sq.ProductID, &sq.Quantity, &sq.ProductModel, &sq.MinimumQuantity,
			&sq.CategoryName, &sq.BrandName); err != nil {
			return nil, fmt.Errorf("scanning stock quantity: %w", err)
		}
		quantities = append(quantities, sq)
	}
	return quantities, rows.Err()
}

// GetStockQuantity returns the quantity pool for a product.
func GetStockQuantity(ctx context.Context, db *sql.DB, productID int64) (*model.StockQuantity, error) {
	sq := &model.StockQuantity{}
	err := db.QueryRowContext(ctx,
		`SELECT product_id, quantity FROM stock_quantities WHERE product_id = ?`, productID,
	).Scan(&sq.ProductID, &sq.Quantity)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting stock quantity: %w", err)
	}
	return sq, nil
}

// AdjustStockQuantity changes a product's quantity pool. The operation
// is a single relative (or absolute, for "set") UPDATE so that
// concurrent adjustments never lose each other's writes. Decrements
// clamp at zero.
func AdjustStockQuantity(ctx context.Context, db *sql.DB, productID int64, op string, quantity int) (*model.StockQuantity, error) {
	if quantity <= 0 && op != model.AdjustSet {
		return nil, &ValidationError{Message: "quantity must be positive"}
	}
	if quantity < 0 {
		return nil, &ValidationError{Message: "quantity must not be negative"}
	}

	var query string
	switch op {
	case model.AdjustIncrement:
		query = `UPDATE stock_quantities SET quantity = quantity + ? WHERE product_id = ?`
	case model.AdjustDecrement:
		query = `UPDATE stock_quantities SET quantity = MAX(0, quantity - ?) WHERE product_id = ?`
	case model.AdjustSet:
		query = `UPDATE stock_quantities SET quantity = ? WHERE product_id = ?`
	default:
		return nil, &ValidationError{Message: fmt.Sprintf("unknown adjustment operation %q", op)}
	}

	result, err := db.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return nil, fmt.Errorf("adjusting stock quantity: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return nil, &NotFoundError{Resource: "stock quantity for product", ID: productID}
	}

	return GetStockQuantity(ctx, db, productID)
}
