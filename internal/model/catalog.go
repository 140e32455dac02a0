package model

import "time"

// Area represents a destination area that receives deliveries.
type Area struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location,omitempty"`
	CostCenter string    `json:"cost_center,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// User represents a delivery recipient (an employee, not an operator login).
type User struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

// Category represents a product category.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Brand represents a product brand.
type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
