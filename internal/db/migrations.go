package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: index stock items by product for per-product
	// availability lookups.
	`CREATE INDEX IF NOT EXISTS idx_stock_items_product ON stock_items(product_id)`,

	// Migration 2: index deliveries by timestamp; listings are always
	// newest-first.
	`CREATE INDEX IF NOT EXISTS idx_deliveries_delivered_at ON deliveries(delivered_at)`,
}

// Migrate ensures the schema exists and runs the migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
