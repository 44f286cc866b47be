package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitPricePlainStyle(t *testing.T) {
	catalog := DefaultCatalog()

	for _, style := range []string{"Style 1", "Style 2", "Style 3", "Style 4"} {
		price, err := catalog.UnitPrice("Classic Tumbler", style)
		require.NoError(t, err)
		assert.Equal(t, int64(3999), price, "plain styles carry no surcharge")
	}
}

func TestUnitPriceSurchargeStyles(t *testing.T) {
	catalog := DefaultCatalog()

	custom, err := catalog.UnitPrice("Can Glass", "Custom")
	require.NoError(t, err)
	assert.Equal(t, int64(1999+catalog.Surcharge("Custom")), custom)

	handPainted, err := catalog.UnitPrice("Can Glass", "Hand Painted")
	require.NoError(t, err)
	assert.Equal(t, int64(1999+catalog.Surcharge("Hand Painted")), handPainted)
}

func TestUnitPriceUnknownItem(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.UnitPrice("Teapot", "Style 1")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestUnitPriceInvalidStyle(t *testing.T) {
	catalog := DefaultCatalog()

	_, err := catalog.UnitPrice("Coffee Cup", "Glow in the Dark")
	assert.ErrorIs(t, err, ErrInvalidStyle)
}

func TestRequiresInstructionsFollowsSurchargeSet(t *testing.T) {
	catalog := DefaultCatalog()

	assert.True(t, catalog.RequiresInstructions("Custom"))
	assert.True(t, catalog.RequiresInstructions("Hand Painted"))
	assert.False(t, catalog.RequiresInstructions("Style 1"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, ValidStatus("Shipped"))
	assert.False(t, ValidStatus("Teleported"))
	assert.True(t, ValidPaymentStatus("Confirmed"))
	assert.False(t, ValidPaymentStatus("Shipped"))
}
