package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"boutique/internal/embedding"
	"boutique/internal/models"
	sqlm "boutique/internal/storage/sqlite"
)

// SQLiteStore implements CatalogStore and OrderStore on a single sqlite file.
// Product vectors are stored as JSON on the product row; similarity search is
// a brute-force cosine scan, which is plenty for a few hundred items.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := (sqlm.Migrator{}).Up(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// DB exposes the underlying handle for tests.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) UpsertProducts(ctx context.Context, items []models.Product) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for _, p := range items {
		tags, _ := json.Marshal(p.Tags)
		colors, _ := json.Marshal(p.Colors)
		sizes, _ := json.Marshal(p.Sizes)
		vec, _ := json.Marshal(p.Embedding)
		_, err := s.db.ExecContext(ctx, `INSERT INTO products
            (id,name,description,price,floor_price,category,tags,colors,sizes,rating,reviews,in_stock,stock_count,embedding,created_at,updated_at)
            VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
            ON CONFLICT(id) DO UPDATE SET
              name=excluded.name, description=excluded.description,
              price=excluded.price, floor_price=excluded.floor_price,
              category=excluded.category, tags=excluded.tags,
              colors=excluded.colors, sizes=excluded.sizes,
              rating=excluded.rating, reviews=excluded.reviews,
              in_stock=excluded.in_stock, stock_count=excluded.stock_count,
              embedding=excluded.embedding, updated_at=excluded.updated_at`,
			p.ID, p.Name, p.Description, p.Price, p.FloorPrice, p.Category,
			string(tags), string(colors), string(sizes), p.Rating, p.Reviews,
			boolToInt(p.InStock), p.StockCount, string(vec), now, now,
		)
		if err != nil {
			return fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}
	return nil
}

const productCols = `id,name,description,price,floor_price,category,tags,colors,sizes,rating,reviews,in_stock,stock_count,embedding`

func (s *SQLiteStore) GetProduct(ctx context.Context, id string) (*models.Product, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (s *SQLiteStore) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 250
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+productCols+` FROM products ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *SQLiteStore) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM products`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) SearchByVector(ctx context.Context, query []float32, threshold float64, k int) ([]VectorMatch, error) {
	if len(query) == 0 || k <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `SELECT `+productCols+` FROM products WHERE embedding IS NOT NULL`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	matches := make([]VectorMatch, 0, k)
	for _, p := range items {
		if len(p.Embedding) != len(query) {
			continue
		}
		score := embedding.Cosine(query, p.Embedding)
		if score >= threshold {
			matches = append(matches, VectorMatch{Product: p, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *SQLiteStore) SearchLexical(ctx context.Context, term, category string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	pat := "%" + escapeLike(strings.ToLower(term)) + "%"
	q := `SELECT ` + productCols + ` FROM products
        WHERE (lower(name) LIKE ? ESCAPE '\'
            OR lower(description) LIKE ? ESCAPE '\'
            OR lower(category) LIKE ? ESCAPE '\'
            OR lower(tags) LIKE ? ESCAPE '\')`
	args := []any{pat, pat, pat, pat}
	if category != "" {
		q += ` AND category=?`
		args = append(args, category)
	}
	q += ` ORDER BY id LIMIT ?`
	args = append(args, limit)
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (s *SQLiteStore) InsertOrder(ctx context.Context, o *models.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO orders
        (id,customer_name,customer_email,customer_phone,customer_address,items,subtotal,discount_percent,coupon_code,total,status,created_at)
        VALUES(?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.Customer.Address,
		string(items), o.Subtotal, o.DiscountPercent, nullable(o.CouponCode), o.Total,
		string(o.Status), o.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id,customer_name,customer_email,customer_phone,customer_address,items,subtotal,discount_percent,coupon_code,total,status,created_at FROM orders ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Order
	for rows.Next() {
		var o models.Order
		var items, createdAt string
		var coupon sql.NullString
		if err := rows.Scan(&o.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.Customer.Address,
			&items, &o.Subtotal, &o.DiscountPercent, &coupon, &o.Total, (*string)(&o.Status), &createdAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(items), &o.Items)
		o.CouponCode = coupon.String
		o.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, o)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanProduct(r rowScanner) (*models.Product, error) {
	var p models.Product
	var tags, colors, sizes, vec sql.NullString
	var inStock int
	if err := r.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.FloorPrice, &p.Category,
		&tags, &colors, &sizes, &p.Rating, &p.Reviews, &inStock, &p.StockCount, &vec); err != nil {
		return nil, err
	}
	p.InStock = inStock != 0
	_ = json.Unmarshal([]byte(tags.String), &p.Tags)
	_ = json.Unmarshal([]byte(colors.String), &p.Colors)
	_ = json.Unmarshal([]byte(sizes.String), &p.Sizes)
	if vec.Valid && vec.String != "" {
		_ = json.Unmarshal([]byte(vec.String), &p.Embedding)
	}
	return &p, nil
}

func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
