package store

import (
	"context"

	"boutique/internal/models"
)

// VectorMatch pairs a product with its similarity to a query vector.
type VectorMatch struct {
	Product models.Product
	Score   float64
}

// CatalogStore is the durable product catalog. Writes are upsert-by-id only;
// nothing in this core deletes items.
type CatalogStore interface {
	UpsertProducts(ctx context.Context, items []models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, bool, error)
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int, error)
	// SearchByVector returns up to k items with cosine similarity to query
	// of at least threshold, best first.
	SearchByVector(ctx context.Context, query []float32, threshold float64, k int) ([]VectorMatch, error)
	// SearchLexical case-insensitively substring-matches term against
	// name, description, category and tags. An empty category scopes to
	// the whole catalog.
	SearchLexical(ctx context.Context, term, category string, limit int) ([]models.Product, error)
}

// OrderStore is append-only: orders are inserted once and never mutated.
type OrderStore interface {
	InsertOrder(ctx context.Context, o *models.Order) error
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
}
