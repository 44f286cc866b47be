package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndTotal(t *testing.T) {
	cart := NewCart()
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())

	cart.Add("Classic Tumbler", "Style 1", 2, 3999)
	cart.Add("Can Glass", "Custom", 1, 2499)

	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(2*3999+2499), cart.Total())
	assert.Equal(t, 3, cart.TotalItems())
}

func TestCartAddMergesQuantityWithoutRepricing(t *testing.T) {
	cart := NewCart()
	cart.Add("Classic Tumbler", "Style 1", 2, 3999)

	// A later add of the same (item, style) merges quantity and keeps
	// the original unit price even if a different price is supplied.
	cart.Add("Classic Tumbler", "Style 1", 3, 4999)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, int64(3999), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(5*3999), cart.Total())
}

func TestCartSameItemDifferentStyleIsSeparateLine(t *testing.T) {
	cart := NewCart()
	cart.Add("Classic Tumbler", "Style 1", 1, 3999)
	cart.Add("Classic Tumbler", "Style 2", 1, 3999)

	assert.Len(t, cart.Lines, 2)
}

func TestCartRemove(t *testing.T) {
	cart := NewCart()
	cart.Add("Classic Tumbler", "Style 1", 1, 3999)
	cart.Add("Can Glass", "Style 2", 2, 1999)

	cart.Remove("Classic Tumbler", "Style 1")
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(2*1999), cart.Total())

	// Removing an absent line is a no-op, not an error.
	cart.Remove("Classic Tumbler", "Style 1")
	assert.Len(t, cart.Lines, 1)
}

func TestCartClear(t *testing.T) {
	cart := NewCart()
	cart.Add("Classic Tumbler", "Style 1", 1, 3999)
	cart.Clear()

	assert.True(t, cart.IsEmpty())
	assert.Equal(t, int64(0), cart.Total())
}

func TestCartRequiresInstructions(t *testing.T) {
	catalog := DefaultCatalog()

	cart := NewCart()
	cart.Add("Classic Tumbler", "Style 1", 1, 3999)
	assert.False(t, cart.RequiresInstructions(catalog))

	cart.Add("Can Glass", "Hand Painted", 1, 2999)
	assert.True(t, cart.RequiresInstructions(catalog))
}
