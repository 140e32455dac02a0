package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// CreateBrand creates a new product brand.
func CreateBrand(ctx context.Context, db *sql.DB, name string) (*model.Brand, error) {
	result, err := db.ExecContext(ctx, `INSERT INTO brands (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("creating brand: %w",
			mapConstraintErr(err, "a brand with that name already exists", "invalid reference"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting brand id: %w", err)
	}

	return GetBrand(ctx, db, id)
}

// GetBrand returns a brand by ID.
func GetBrand(ctx context.Context, db *sql.DB, id int64) (*model.Brand, error) {
	b := &model.Brand{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name FROM brands WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting brand: %w", err)
	}
	return b, nil
}

// ListBrands returns all brands ordered by name.
func ListBrands(ctx context.Context, db *sql.DB) ([]model.Brand, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	var brands []model.Brand
	for rows.Next() {
		var b model.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scanning brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// UpdateBrand renames a brand.
func UpdateBrand(ctx context.Context, db *sql.DB, id int64, name string) error {
	result, err := db.ExecContext(ctx, `UPDATE brands SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("updating brand: %w",
			mapConstraintErr(err, "a brand with that name already exists", "invalid reference"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "brand", ID: id}
	}
	return nil
}

// DeleteBrand deletes a brand. Fails with a conflict if products
// reference it.
func DeleteBrand(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting brand: %w",
			mapConstraintErr(err, "conflicting brand", "brand is referenced by products"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "brand", ID: id}
	}
	return nil
}
