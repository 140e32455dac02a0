package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'manager', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_username_active
    ON accounts(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS areas (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL UNIQUE,
    location    TEXT,
    cost_center TEXT,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
    id          INTEGER PRIMARY KEY,
    employee_id INTEGER NOT NULL UNIQUE,
    full_name   TEXT NOT NULL,
    active      INTEGER NOT NULL DEFAULT 1,
    created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS categories (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS brands (
    id   INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS products (
    id               INTEGER PRIMARY KEY,
    category_id      INTEGER NOT NULL REFERENCES categories(id),
    brand_id         INTEGER NOT NULL REFERENCES brands(id),
    model            TEXT NOT NULL,
    sku              TEXT,
    description      TEXT,
    minimum_quantity INTEGER NOT NULL DEFAULT 0,
    is_serialized    INTEGER NOT NULL,
    image            BLOB,
    image_mime       TEXT,
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku
    ON products(sku) WHERE sku IS NOT NULL;

CREATE TABLE IF NOT EXISTS stock_items (
    id          INTEGER PRIMARY KEY,
    product_id  INTEGER NOT NULL REFERENCES products(id),
    serial      TEXT NOT NULL UNIQUE,
    received_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    location    TEXT,
    status      TEXT NOT NULL DEFAULT 'in_warehouse'
                CHECK (status IN ('in_warehouse', 'delivered', 'maintenance', 'decommissioned'))
);

CREATE TABLE IF NOT EXISTS stock_quantities (
    product_id INTEGER PRIMARY KEY REFERENCES products(id),
    quantity   INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0)
);

CREATE TABLE IF NOT EXISTS deliveries (
    id           INTEGER PRIMARY KEY,
    user_id      INTEGER NOT NULL REFERENCES users(id),
    area_id      INTEGER NOT NULL REFERENCES areas(id),
    delivered_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    observation  TEXT
);

CREATE TABLE IF NOT EXISTS delivery_lines (
    id          INTEGER PRIMARY KEY,
    delivery_id INTEGER NOT NULL REFERENCES deliveries(id),
    product_id  INTEGER NOT NULL REFERENCES products(id),
    item_id     INTEGER REFERENCES stock_items(id),
    quantity    INTEGER NOT NULL CHECK (quantity > 0)
);

CREATE INDEX IF NOT EXISTS idx_delivery_lines_delivery
    ON delivery_lines(delivery_id);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
