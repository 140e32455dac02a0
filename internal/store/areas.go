package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// CreateArea creates a new destination area.
func CreateArea(ctx context.Context, db *sql.DB, name, location, costCenter string) (*model.Area, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO areas (name, location, cost_center) VALUES (?, ?, ?)`,
		name, nullable(location), nullable(costCenter),
	)
	if err != nil {
		return nil, fmt.Errorf("creating area: %w",
			mapConstraintErr(err, "an area with that name already exists", "invalid reference"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting area id: %w", err)
	}

	return GetArea(ctx, db, id)
}

// GetArea returns an area by ID.
func GetArea(ctx context.Context, db *sql.DB, id int64) (*model.Area, error) {
	a := &model.Area{}
	var location, costCenter sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, name, location, cost_center, created_at FROM areas WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &location, &costCenter, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting area: %w", err)
	}
	a.Location = location.String
	a.CostCenter = costCenter.String
	return a, nil
}

// ListAreas returns all areas ordered by name.
func ListAreas(ctx context.Context, db *sql.DB) ([]model.Area, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, location, cost_center, created_at FROM areas ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing areas: %w", err)
	}
	defer rows.Close()

	var areas []model.Area
	for rows.Next() {
		var a model.Area
		var location, costCenter sql.NullString
		if err := rows.Scan(&a.ID, &a.Name, &location, &costCenter, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning area: %w", err)
		}
		a.Location = location.String
		a.CostCenter = costCenter.String
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

// UpdateArea updates an area.
func UpdateArea(ctx context.Context, db *sql.DB, id int64, name, location, costCenter string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE areas SET name = ?, location = ?, cost_center = ? WHERE id = ?`,
		name, nullable(location), nullable(costCenter), id,
	)
	if err != nil {
		return fmt.Errorf("updating area: %w",
			mapConstraintErr(err, "an area with that name already exists", "invalid reference"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "area", ID: id}
	}
	return nil
}

// DeleteArea deletes an area. Fails with a conflict if deliveries
// reference it.
func DeleteArea(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM areas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting area: %w",
			mapConstraintErr(err, "conflicting area", "area is referenced by deliveries"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "area", ID: id}
	}
	return nil
}

// nullable converts an empty string to a SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
