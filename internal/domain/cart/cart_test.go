// internal/domain/cart/cart_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetQuantityClampsNegatives(t *testing.T) {
	c := New()

	c.SetQuantity("garden-harvest-bowl", -3)
	assert.Equal(t, 0, c.Quantity("garden-harvest-bowl"))

	c.SetQuantity("garden-harvest-bowl", 2)
	assert.Equal(t, 2, c.Quantity("garden-harvest-bowl"))
}

func TestIncrementDecrement(t *testing.T) {
	c := New()

	c.Increment("citrus-salmon-plate")
	c.Increment("citrus-salmon-plate")
	assert.Equal(t, 2, c.Quantity("citrus-salmon-plate"))

	c.Decrement("citrus-salmon-plate")
	assert.Equal(t, 1, c.Quantity("citrus-salmon-plate"))

	// Decrement stops at zero
	c.Decrement("citrus-salmon-plate")
	c.Decrement("citrus-salmon-plate")
	assert.Equal(t, 0, c.Quantity("citrus-salmon-plate"))
}

func TestUnknownItemsAreSilentlyAccepted(t *testing.T) {
	c := New()

	c.Increment("no-such-meal")
	assert.Equal(t, 1, c.Quantity("no-such-meal"))
	assert.Equal(t, 1, c.TotalItemCount())
}

func TestTotalItemCount(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.TotalItemCount())

	c.SetQuantity("a", 2)
	c.SetQuantity("b", 3)
	c.SetQuantity("c", 0)
	assert.Equal(t, 5, c.TotalItemCount())
}

func TestLinesExcludeZeroQuantities(t *testing.T) {
	c := New()
	c.SetQuantity("a", 2)
	c.SetQuantity("b", 0)

	lines := c.Lines()
	assert.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
}
