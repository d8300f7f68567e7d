package clerk

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"boutique/internal/llm"
	"boutique/internal/models"
	"boutique/internal/orders"
	"boutique/internal/retrieval"
	"boutique/internal/store"
)

// Storefront is the state-mutation surface directives are dispatched into.
type Storefront interface {
	AddToCart(item models.CartItem)
	SetSort(value string)
	SetFilter(value string)
	SetSearch(value string)
	ApplyCoupon(c models.Coupon)
	SetHighlightedIDs(ids []string)
}

var (
	// ErrTurnInFlight is returned when a send overlaps a running turn.
	ErrTurnInFlight = errors.New("a model turn is already in flight")
	// ErrConnectivity covers an unreachable model service or a dead stream.
	ErrConnectivity = errors.New("model service unavailable")
)

// FallbackReply is the single message shown when the model can't be reached.
// The conversation stays usable for the next attempt.
const FallbackReply = "Sorry, I'm having trouble connecting. Please try again!"

// Deps are the collaborators one session talks to.
type Deps struct {
	Provider           llm.ChatProvider
	Pipeline           *retrieval.Pipeline
	Catalog            store.CatalogStore
	Orders             *orders.Service
	Front              Storefront
	MaxDiscountPercent float64
}

// Session is one conversation: a transcript, the dispatch targets, and the
// one-turn-at-a-time guard. Independent sessions share nothing but the
// durable stores.
type Session struct {
	id   string
	deps Deps

	mu         sync.Mutex
	transcript []models.Message
	inFlight   bool
}

func NewSession(id string, deps Deps) *Session {
	if deps.MaxDiscountPercent <= 0 {
		deps.MaxDiscountPercent = 25
	}
	return &Session{id: id, deps: deps}
}

func (s *Session) ID() string { return s.id }

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.transcript...)
}

// OrderOutcome reports one place-order directive's fate.
type OrderOutcome struct {
	OrderID string `json:"orderId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// TurnResult summarizes a completed model turn.
type TurnResult struct {
	Rendered  string         `json:"rendered"`
	CartAdds  int            `json:"cartAdds"`
	UIActions int            `json:"uiActions"`
	Coupon    *models.Coupon `json:"coupon,omitempty"`
	Orders    []OrderOutcome `json:"orders,omitempty"`
}

// Send runs one model turn: retrieve grounding context, stream the reply
// into the transcript, then extract and dispatch directives. onUpdate is
// called with the assistant text so far after each fragment. Only one turn
// may be in flight per session.
func (s *Session) Send(ctx context.Context, userText string, onUpdate func(soFar string)) (*TurnResult, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrTurnInFlight
	}
	s.inFlight = true
	s.transcript = append(s.transcript, models.Message{Role: models.RoleUser, Content: userText})
	history := append([]models.Message(nil), s.transcript...)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	// retrieval degradation is never surfaced to the user
	var items []models.AnnotatedProduct
	var highlighted []string
	if rc, err := s.deps.Pipeline.Retrieve(ctx, userText); err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("retrieval failed, prompting without context")
	} else {
		items = rc.Items
		highlighted = rc.HighlightedIDs
	}

	msgs := make([]models.Message, 0, len(history)+1)
	msgs = append(msgs, models.Message{
		Role:    models.RoleSystem,
		Content: BuildSystemPrompt(items, s.deps.MaxDiscountPercent),
	})
	msgs = append(msgs, history...)

	body, err := s.deps.Provider.StreamChat(ctx, msgs)
	if err != nil {
		log.Warn().Err(err).Str("session", s.id).Msg("model service unreachable")
		s.appendAssistant(FallbackReply)
		return nil, ErrConnectivity
	}
	defer body.Close()

	assistantIdx := -1
	final, err := Consume(body, func(soFar string) {
		s.mu.Lock()
		if assistantIdx == -1 {
			s.transcript = append(s.transcript, models.Message{Role: models.RoleAssistant})
			assistantIdx = len(s.transcript) - 1
		}
		s.transcript[assistantIdx].Content = soFar
		s.mu.Unlock()
		if onUpdate != nil {
			onUpdate(soFar)
		}
	})
	if err != nil {
		if final == "" {
			log.Warn().Err(err).Str("session", s.id).Msg("stream failed before any content")
			s.appendAssistant(FallbackReply)
			return nil, ErrConnectivity
		}
		// partial turn: keep what arrived and extract from it
		log.Warn().Err(err).Str("session", s.id).Msg("stream ended early, using partial turn")
	}
	if assistantIdx == -1 {
		s.appendAssistant(final)
	}

	res := s.dispatch(ctx, Extract(final))
	s.deps.Front.SetHighlightedIDs(highlighted)
	res.Rendered = Render(final)
	return res, nil
}

func (s *Session) appendAssistant(content string) {
	s.mu.Lock()
	s.transcript = append(s.transcript, models.Message{Role: models.RoleAssistant, Content: content})
	s.mu.Unlock()
}

// dispatch applies each directive; invalid ones are skipped so a bad block
// never takes down the turn.
func (s *Session) dispatch(ctx context.Context, dirs []Directive) *TurnResult {
	res := &TurnResult{}
	for _, d := range dirs {
		switch d := d.(type) {
		case AddToCart:
			p, ok, err := s.deps.Catalog.GetProduct(ctx, d.ProductID)
			if err != nil || !ok {
				log.Debug().Str("product", d.ProductID).Msg("cart-add for unknown product skipped")
				continue
			}
			color, size := d.Color, d.Size
			if color == "" && len(p.Colors) > 0 {
				color = p.Colors[0]
			}
			if size == "" && len(p.Sizes) > 0 {
				size = p.Sizes[0]
			}
			s.deps.Front.AddToCart(models.CartItem{
				ProductID: p.ID, Name: p.Name, Price: p.Price,
				Color: color, Size: size, Quantity: 1,
			})
			res.CartAdds++
		case UIControl:
			switch d.Kind {
			case "sort":
				s.deps.Front.SetSort(d.Value)
			case "filter":
				s.deps.Front.SetFilter(d.Value)
			case "search":
				s.deps.Front.SetSearch(d.Value)
			}
			res.UIActions++
		case CouponGrant:
			if d.Discount > s.deps.MaxDiscountPercent || d.Discount < -s.deps.MaxDiscountPercent {
				log.Warn().Str("code", d.Code).Float64("discount", d.Discount).Msg("coupon outside allowed range skipped")
				continue
			}
			c := models.Coupon{Code: d.Code, Discount: d.Discount}
			s.deps.Front.ApplyCoupon(c)
			res.Coupon = &c
		case PlaceOrder:
			o, err := s.deps.Orders.Commit(ctx, orders.Request{
				Customer: d.Customer, Items: d.Items, Coupon: d.Coupon,
			})
			if err != nil {
				log.Error().Err(err).Str("session", s.id).Msg("order commit failed")
				res.Orders = append(res.Orders, OrderOutcome{Error: err.Error()})
				continue
			}
			res.Orders = append(res.Orders, OrderOutcome{OrderID: o.ID})
		}
	}
	return res
}
