package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avillegas/inventario/internal/model"
)

// CreateUser creates a new delivery recipient.
func CreateUser(ctx context.Context, db *sql.DB, employeeID int64, fullName string, active bool) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (employee_id, full_name, active) VALUES (?, ?, ?)`,
		employeeID, fullName, active,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w",
			mapConstraintErr(err, "a user with that employee number already exists", "invalid reference"))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, employee_id, full_name, active, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.EmployeeID, &u.FullName, &u.Active, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// ListUsers returns all users, optionally only active ones.
func ListUsers(ctx context.Context, db *sql.DB, activeOnly bool) ([]model.User, error) {
	query := `SELECT id, employee_id, full_name, active, created_at FROM users`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY full_name`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.EmployeeID, &u.FullName, &u.Active, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser updates a user's details and active flag.
func UpdateUser(ctx context.Context, db *sql.DB, id, employeeID int64, fullName string, active bool) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET employee_id = ?, full_name = ?, active = ? WHERE id = ?`,
		employeeID, fullName, active, id,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w",
			mapConstraintErr(err, "a user with that employee number already exists", "invalid reference"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

// DeleteUser deletes a user. Fails with a conflict if deliveries
// reference them.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w",
			mapConstraintErr(err, "conflicting user", "user is referenced by deliveries"))
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return &NotFoundError{Resource: "user", ID: id}
	}
	return nil
}
