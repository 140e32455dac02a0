package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

const productColumns = `p.id, p.category_id, p.brand_id, p.model, p.sku, p.description,
	        p.minimum_quantity, p.is_serialized, p.image_mime, p.created_at, p.updated_at,
	        c.name AS category_name, b.name AS brand_name`

// CreateProduct creates a product. The serialized flag is fixed for the
// lifetime of the product: it selects which stock-tracking model every
// later stock and delivery operation uses. Non-serialized products get
// their quantity-pool row (at zero) in the same transaction.
func CreateProduct(ctx context.Context, db *sql.DB, p model.Product) (*model.Product, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (category_id, brand_id, model, sku, description, minimum_quantity, is_serialized)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.CategoryID, p.BrandID, p.Model, nullable(p.SKU), nullable(p.Description),
		p.MinimumQuantity, p.IsSerialized,
	)
	if err != nil {
		return nil, fmt.Errorf("creating product: %w",
			mapConstraintErr(err, "a product with that SKU already exists", "referenced category or brand does not exist"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting product id: %w", err)
	}

	if !p.IsSerialized {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stock_quantities (product_id, quantity) VALUES (?, 0)`, id,
		); err != nil {
			return nil, fmt.Errorf("creating stock quantity row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing product: %w", err)
	}

	return GetProduct(ctx, db, id)
}

// GetProduct returns a product by ID with category and brand names.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+productColumns+`
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 JOIN brands b ON b.id = p.brand_id
		 WHERE p.id = ?`, id,
	)

	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return p, nil
}

// ListProducts returns all products with category and brand names,
// ordered by model.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+productColumns+`
		 FROM products p
		 JOIN categories c ON c.id = p.category_id
		 JOIN brands b ON b.id = p.brand_id
		 ORDER BY p.model`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*model.Product, error) {
	p := &model.Product{}
	var sku, description, imageMime sql.NullString
	err := s.Scan(&p.ID, &p.CategoryID, &p.BrandID, &p.Model, &sku, &description,
		&p.MinimumQuantity, &p.IsSerialized, &imageMime, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.BrandName)
	if err != nil {
		return nil, err
	}
	p.SKU = sku.String
	p.Description = description.String
	p.ImageMime = imageMime.String
	return p, nil
}

// UpdateProduct updates a product's mutable attributes. The serialized
// flag is deliberately not updatable.
func UpdateProduct(ctx context.Context, db *sql.DB, id int64, p model.Product) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products
		 SET category_id = ?, brand_id = ?, model = ?, sku = ?, description = ?,
		     minimum_quantity = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.CategoryID, p.BrandID, p.Model, nullable(p.SKU), nullable(p.Description),
		p.MinimumQuantity, id,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w",
			mapConstraintErr(err, "a product with that SKU already exists", "referenced category or brand does not exist"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "product", ID: id}
	}
	return nil
}

// DeleteProduct deletes a product and its quantity-pool row. Fails with
// a conflict if stock items or delivery lines reference it.
func DeleteProduct(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM stock_quantities WHERE product_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting stock quantity row: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w",
			mapConstraintErr(err, "conflicting product", "product is referenced by stock items or deliveries"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "product", ID: id}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing product deletion: %w", err)
	}
	return nil
}

// SetProductImage stores a product's photo.
func SetProductImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE products SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting product image: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "product", ID: id}
	}
	return nil
}

// GetProductImage returns a product's photo and MIME type.
func GetProductImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM products WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", &NotFoundError{Resource: "product", ID: id}
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting product image: %w", err)
	}
	return image, mime.String, nil
}
