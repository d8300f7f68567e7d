package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrator applies the minimal schema for catalog and orders. Caller provides
// an opened *sql.DB.
type Migrator struct{}

func (m Migrator) Up(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT,
            price REAL NOT NULL,
            floor_price REAL NOT NULL,
            category TEXT NOT NULL,
            tags TEXT,
            colors TEXT,
            sizes TEXT,
            rating REAL DEFAULT 0,
            reviews INTEGER DEFAULT 0,
            in_stock INTEGER DEFAULT 1,
            stock_count INTEGER DEFAULT 0,
            embedding TEXT,
            created_at TEXT NOT NULL,
            updated_at TEXT
        );`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            customer_name TEXT NOT NULL,
            customer_email TEXT NOT NULL,
            customer_phone TEXT NOT NULL,
            customer_address TEXT NOT NULL,
            items TEXT NOT NULL,
            subtotal REAL NOT NULL,
            discount_percent REAL DEFAULT 0,
            coupon_code TEXT,
            total REAL NOT NULL,
            status TEXT NOT NULL,
            created_at TEXT NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at);`,
	}
	for i, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}
