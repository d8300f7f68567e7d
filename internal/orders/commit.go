// Package orders turns a validated place-order request into a persisted
// order and a best-effort fulfillment notification.
package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"boutique/internal/models"
	"boutique/internal/store"
)

// ErrInvalid marks requests rejected before any state change.
var ErrInvalid = errors.New("invalid order")

// Request is an extracted place-order directive.
type Request struct {
	Customer models.Customer
	Items    []models.OrderItem
	Coupon   *models.Coupon
}

type Service struct {
	store      store.OrderStore
	webhookURL string
	timeout    time.Duration
	http       *http.Client

	// now is swapped in tests
	now func() time.Time
}

func NewService(os store.OrderStore, webhookURL string, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		store:      os,
		webhookURL: webhookURL,
		timeout:    timeout,
		http:       &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Commit validates the request, computes totals, persists the order and then
// fires the fulfillment notification. Only a persistence failure is a commit
// failure; the notification is detached and its errors are swallowed after
// logging. A negative discount is a surcharge and legitimately raises the
// total — it is never clamped.
func (s *Service) Commit(ctx context.Context, req Request) (*models.Order, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	var subtotal float64
	items := make([]models.OrderItem, len(req.Items))
	for i, it := range req.Items {
		if it.Quantity <= 0 {
			it.Quantity = 1
		}
		subtotal += it.Price * float64(it.Quantity)
		items[i] = it
	}
	var discount float64
	var couponCode string
	if req.Coupon != nil {
		discount = req.Coupon.Discount
		couponCode = req.Coupon.Code
	}
	total := subtotal * (1 - discount/100)

	o := &models.Order{
		ID:              uuid.NewString(),
		Customer:        req.Customer,
		Items:           items,
		Subtotal:        subtotal,
		DiscountPercent: discount,
		CouponCode:      couponCode,
		Total:           total,
		Status:          models.OrderPending,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.store.InsertOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	log.Info().Str("order_id", o.ID).Float64("total", o.Total).Msg("order committed")

	// the order is durable at this point; fulfillment is fire-and-forget
	go s.notify(o)
	return o, nil
}

func validate(req Request) error {
	c := req.Customer
	if c.Name == "" || c.Email == "" || c.Phone == "" || c.Address == "" {
		return fmt.Errorf("%w: incomplete customer contact", ErrInvalid)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalid)
	}
	return nil
}

func (s *Service) notify(o *models.Order) {
	if s.webhookURL == "" {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"customer_name":    o.Customer.Name,
		"customer_email":   o.Customer.Email,
		"customer_phone":   o.Customer.Phone,
		"customer_address": o.Customer.Address,
		"items":            o.Items,
		"subtotal":         o.Subtotal,
		"discount_percent": o.DiscountPercent,
		"coupon_code":      o.CouponCode,
		"total":            o.Total,
		"status":           o.Status,
		"ordered_at":       s.now().UTC().Format(time.RFC3339),
	})
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("fulfillment notify skipped")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("fulfillment notify failed")
		return
	}
	resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		log.Warn().Int("status", resp.StatusCode).Str("order_id", o.ID).Msg("fulfillment notify rejected")
	}
}
