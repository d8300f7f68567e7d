package models

import "time"

// Role identifies the author of a transcript entry.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry. The last assistant entry may be rewritten
// in place while a model turn is streaming; entries are never reordered.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Product is a catalog item. FloorPrice is the minimum negotiable price and
// must never be serialized toward the UI or the model context.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	FloorPrice  float64  `json:"-"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Rating      float64  `json:"rating"`
	Reviews     int      `json:"reviews"`
	InStock     bool     `json:"inStock"`
	StockCount  int      `json:"stockCount"`

	// Embedding is derived from the item's text fields and persisted for
	// reuse across queries. Not part of the UI payload.
	Embedding []float32 `json:"-"`
}

// EmbedText concatenates the fields the embedding is derived from.
func (p *Product) EmbedText() string {
	s := p.Name + " " + p.Description + " " + p.Category
	for _, t := range p.Tags {
		s += " " + t
	}
	for _, c := range p.Colors {
		s += " " + c
	}
	return s
}

// Relevance tiers for the assembled model context.
const (
	RelevanceHigh      = "high"
	RelevanceAvailable = "available"
)

// AnnotatedProduct is a catalog item plus its relevance hint.
type AnnotatedProduct struct {
	Product
	Relevance string `json:"relevance"`
}

// Coupon is the single active discount for a session. Discount is a signed
// percentage; negative values are surcharges.
type Coupon struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// CartItem is one line of a session's cart.
type CartItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"color"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
}

// Customer is the contact block of an order. All fields are required.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderItem is one purchased line of an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Quantity  int     `json:"quantity"`
}

// OrderStatus of a persisted order. Orders are append-only; this core only
// ever writes "pending".
type OrderStatus string

const OrderPending OrderStatus = "pending"

// Order is the persisted record of a committed purchase.
type Order struct {
	ID              string      `json:"id"`
	Customer        Customer    `json:"customer"`
	Items           []OrderItem `json:"items"`
	Subtotal        float64     `json:"subtotal"`
	DiscountPercent float64     `json:"discountPercent"`
	CouponCode      string      `json:"couponCode,omitempty"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"createdAt"`
}
