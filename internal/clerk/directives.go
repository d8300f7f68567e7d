package clerk

import (
	"encoding/json"
	"sort"
	"strings"

	"boutique/internal/models"
)

// Directive markers. A model turn embeds commands as JSON payloads between
// sentinel pairs; everything else in the turn is prose.
const (
	markAddToCart  = "---ADD_TO_CART---"
	markUIAction   = "---UI_ACTION---"
	markCoupon     = "---COUPON---"
	markPlaceOrder = "---PLACE_ORDER---"
	markEndAction  = "---END_ACTION---"
	markEndCoupon  = "---END_COUPON---"
	markEndOrder   = "---END_ORDER---"
)

// Directive is a structured command extracted from model output.
type Directive interface{ directive() }

// AddToCart requests a catalog item be placed in the cart. Color and size
// default to the item's first listed option when omitted.
type AddToCart struct {
	ProductID string `json:"productId"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// UIControl forwards a display mutation to the storefront.
type UIControl struct {
	Kind  string `json:"type"` // sort | filter | search
	Value string `json:"value"`
}

// CouponGrant activates a discount code. Discount is signed; at most one
// coupon is active per session and a new grant replaces the old one.
type CouponGrant struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// PlaceOrder carries a complete checkout request.
type PlaceOrder struct {
	Customer models.Customer    `json:"customer"`
	Items    []models.OrderItem `json:"items"`
	Coupon   *models.Coupon     `json:"coupon"`
}

func (AddToCart) directive()   {}
func (UIControl) directive()   {}
func (CouponGrant) directive() {}
func (PlaceOrder) directive()  {}

type span struct {
	pos int
	d   Directive
}

// Extract scans text for every non-overlapping directive block and returns
// the decoded directives in text order. Each payload is parsed
// independently; a block that fails to decode is skipped so one malformed
// directive cannot abort the rest of the turn.
func Extract(text string) []Directive {
	var spans []span
	collect := func(start, end string, decode func(payload string) (Directive, bool)) {
		for _, m := range findBlocks(text, start, end) {
			if d, ok := decode(m.payload); ok {
				spans = append(spans, span{pos: m.pos, d: d})
			}
		}
	}
	collect(markAddToCart, markEndAction, func(p string) (Directive, bool) {
		var d AddToCart
		if json.Unmarshal([]byte(p), &d) != nil || d.ProductID == "" {
			return nil, false
		}
		return d, true
	})
	collect(markUIAction, markEndAction, func(p string) (Directive, bool) {
		var d UIControl
		if json.Unmarshal([]byte(p), &d) != nil {
			return nil, false
		}
		switch d.Kind {
		case "sort", "filter", "search":
			return d, true
		}
		return nil, false
	})
	collect(markCoupon, markEndCoupon, func(p string) (Directive, bool) {
		var d CouponGrant
		if json.Unmarshal([]byte(p), &d) != nil || d.Code == "" {
			return nil, false
		}
		return d, true
	})
	collect(markPlaceOrder, markEndOrder, func(p string) (Directive, bool) {
		var d PlaceOrder
		if json.Unmarshal([]byte(p), &d) != nil {
			return nil, false
		}
		return d, true
	})
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].pos < spans[j].pos })
	out := make([]Directive, len(spans))
	for i, s := range spans {
		out[i] = s.d
	}
	return out
}

// Render replaces directive blocks with short confirmations so raw directive
// syntax never reaches the conversational surface. Text without blocks comes
// back unchanged.
func Render(text string) string {
	text = replaceBlocks(text, markAddToCart, markEndAction, "✅ *Added to cart!*")
	text = replaceBlocks(text, markUIAction, markEndAction, "✨ *Updated the store display!*")
	text = replaceBlocks(text, markCoupon, markEndCoupon, "")
	text = replaceBlocks(text, markPlaceOrder, markEndOrder, "✅ **Order placed successfully!** 🎉 You'll receive a confirmation at your email shortly.")
	return text
}

type block struct {
	pos     int
	payload string
}

// findBlocks locates non-overlapping start..end marker pairs by plain index
// scanning; no regex is needed for a fixed-sentinel grammar.
func findBlocks(text, start, end string) []block {
	var out []block
	off := 0
	for {
		i := strings.Index(text[off:], start)
		if i == -1 {
			return out
		}
		i += off
		body := i + len(start)
		j := strings.Index(text[body:], end)
		if j == -1 {
			return out
		}
		out = append(out, block{pos: i, payload: strings.TrimSpace(text[body : body+j])})
		off = body + j + len(end)
	}
}

func replaceBlocks(text, start, end, repl string) string {
	var b strings.Builder
	off := 0
	for {
		i := strings.Index(text[off:], start)
		if i == -1 {
			b.WriteString(text[off:])
			return b.String()
		}
		i += off
		j := strings.Index(text[i+len(start):], end)
		if j == -1 {
			b.WriteString(text[off:])
			return b.String()
		}
		b.WriteString(text[off:i])
		b.WriteString(repl)
		off = i + len(start) + j + len(end)
	}
}
