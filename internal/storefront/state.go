// Package storefront is the in-process collaborator holding one session's
// display and cart state. The clerk dispatches extracted directives into it;
// the HTTP layer reads snapshots out of it.
package storefront

import (
	"sync"

	"boutique/internal/models"
)

// State is the per-session storefront state record. The active coupon is a
// deliberate singleton: applying a new one replaces the prior.
type State struct {
	mu             sync.RWMutex
	cart           []models.CartItem
	sortBy         string
	filterCategory string
	searchQuery    string
	coupon         *models.Coupon
	highlightedIDs []string
}

func New() *State {
	return &State{sortBy: "featured", filterCategory: "All"}
}

// AddToCart appends a line, or bumps quantity when the product is already
// carted.
func (s *State) AddToCart(item models.CartItem) {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ProductID == item.ProductID {
			s.cart[i].Quantity += item.Quantity
			return
		}
	}
	s.cart = append(s.cart, item)
}

func (s *State) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.cart[:0]
	for _, it := range s.cart {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	s.cart = out
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *State) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].ProductID == productID {
			s.cart[i].Quantity = quantity
			return
		}
	}
}

func (s *State) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
}

func (s *State) SetSort(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = value
}

func (s *State) SetFilter(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterCategory = value
}

func (s *State) SetSearch(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = value
}

func (s *State) ApplyCoupon(c models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = &c
}

func (s *State) RemoveCoupon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.coupon = nil
}

func (s *State) Coupon() *models.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

func (s *State) SetHighlightedIDs(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlightedIDs = append([]string(nil), ids...)
}

// CartTotal is the undiscounted sum over lines of price × quantity.
func (s *State) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, it := range s.cart {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Snapshot is an immutable view for the HTTP layer.
type Snapshot struct {
	Cart           []models.CartItem `json:"cart"`
	SortBy         string            `json:"sortBy"`
	FilterCategory string            `json:"filterCategory"`
	SearchQuery    string            `json:"searchQuery"`
	Coupon         *models.Coupon    `json:"coupon,omitempty"`
	HighlightedIDs []string          `json:"highlightedIds"`
	CartTotal      float64           `json:"cartTotal"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Cart:           append([]models.CartItem(nil), s.cart...),
		SortBy:         s.sortBy,
		FilterCategory: s.filterCategory,
		SearchQuery:    s.searchQuery,
		HighlightedIDs: append([]string(nil), s.highlightedIDs...),
	}
	if s.coupon != nil {
		c := *s.coupon
		snap.Coupon = &c
	}
	for _, it := range s.cart {
		snap.CartTotal += it.Price * float64(it.Quantity)
	}
	return snap
}
