package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"boutique/internal/embedding"
	"boutique/internal/models"
)

// MemStore is an in-memory CatalogStore/OrderStore with the same query
// semantics as the sqlite implementation. Used by tests and as a fallback
// when no sqlite path is configured.
type MemStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	order    []string // insertion order of ids
	orders   []models.Order
}

func NewMem() *MemStore {
	return &MemStore{products: make(map[string]models.Product)}
}

func (s *MemStore) UpsertProducts(ctx context.Context, items []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range items {
		if _, ok := s.products[p.ID]; !ok {
			s.order = append(s.order, p.ID)
		}
		s.products[p.ID] = p
	}
	return nil
}

func (s *MemStore) GetProduct(ctx context.Context, id string) (*models.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *MemStore) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]models.Product, 0, limit)
	for _, id := range s.order[:limit] {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *MemStore) CountProducts(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products), nil
}

func (s *MemStore) SearchByVector(ctx context.Context, query []float32, threshold float64, k int) ([]VectorMatch, error) {
	if len(query) == 0 || k <= 0 {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matches []VectorMatch
	for _, id := range s.order {
		p := s.products[id]
		if len(p.Embedding) != len(query) {
			continue
		}
		if score := embedding.Cosine(query, p.Embedding); score >= threshold {
			matches = append(matches, VectorMatch{Product: p, Score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

func (s *MemStore) SearchLexical(ctx context.Context, term, category string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	term = strings.ToLower(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Product
	for _, id := range s.order {
		p := s.products[id]
		if category != "" && p.Category != category {
			continue
		}
		hay := strings.ToLower(p.Name + " " + p.Description + " " + p.Category + " " + strings.Join(p.Tags, " "))
		if strings.Contains(hay, term) {
			out = append(out, p)
			if len(out) >= limit {
				break
			}
		}
	}
	return out, nil
}

func (s *MemStore) InsertOrder(ctx context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, *o)
	return nil
}

func (s *MemStore) ListOrders(ctx context.Context, limit int) ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.orders) {
		limit = len(s.orders)
	}
	out := make([]models.Order, limit)
	// newest first, matching the sqlite ordering
	for i := 0; i < limit; i++ {
		out[i] = s.orders[len(s.orders)-1-i]
	}
	return out, nil
}
