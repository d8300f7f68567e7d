package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/internal/models"
)

func TestAddToCartBumpsExistingLine(t *testing.T) {
	s := New()
	s.AddToCart(models.CartItem{ProductID: "3", Name: "Leather Oxford Shoes", Price: 459, Quantity: 1})
	s.AddToCart(models.CartItem{ProductID: "3", Name: "Leather Oxford Shoes", Price: 459, Quantity: 2})
	snap := s.Snapshot()
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, 3, snap.Cart[0].Quantity)
	assert.Equal(t, 1377.0, snap.CartTotal)
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	s := New()
	s.AddToCart(models.CartItem{ProductID: "6", Price: 199})
	snap := s.Snapshot()
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, 1, snap.Cart[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := New()
	s.AddToCart(models.CartItem{ProductID: "6", Price: 199, Quantity: 2})
	s.UpdateQuantity("6", 5)
	assert.Equal(t, 5, s.Snapshot().Cart[0].Quantity)
	s.UpdateQuantity("6", 0)
	assert.Empty(t, s.Snapshot().Cart)
}

func TestApplyCouponReplacesActive(t *testing.T) {
	s := New()
	s.ApplyCoupon(models.Coupon{Code: "FIRST-10", Discount: 10})
	s.ApplyCoupon(models.Coupon{Code: "SECOND-15", Discount: 15})
	c := s.Coupon()
	require.NotNil(t, c)
	assert.Equal(t, "SECOND-15", c.Code)
	s.RemoveCoupon()
	assert.Nil(t, s.Coupon())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	s.AddToCart(models.CartItem{ProductID: "1", Price: 10, Quantity: 1})
	s.SetHighlightedIDs([]string{"1", "2"})
	snap := s.Snapshot()
	snap.Cart[0].Quantity = 99
	snap.HighlightedIDs[0] = "mutated"
	fresh := s.Snapshot()
	assert.Equal(t, 1, fresh.Cart[0].Quantity)
	assert.Equal(t, "1", fresh.HighlightedIDs[0])
}

func TestDefaultsAndDisplayControls(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	assert.Equal(t, "featured", snap.SortBy)
	assert.Equal(t, "All", snap.FilterCategory)

	s.SetSort("price-low")
	s.SetFilter("Accessories")
	s.SetSearch("linen")
	snap = s.Snapshot()
	assert.Equal(t, "price-low", snap.SortBy)
	assert.Equal(t, "Accessories", snap.FilterCategory)
	assert.Equal(t, "linen", snap.SearchQuery)
}
