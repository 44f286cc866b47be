package services

import (
	"testing"
	"tumble_cup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() CartService {
	return NewCartService(models.DefaultCatalog(), NewMemoryCartStore())
}

func TestAddItemPricesFromCatalog(t *testing.T) {
	svc := newTestCartService()

	cart, err := svc.AddItem("s1", "Classic Tumbler", "Hand Painted", 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(3999+1000), cart.Lines[0].UnitPrice)
	assert.Equal(t, int64(2*(3999+1000)), cart.Total())
}

func TestAddItemRejectsUnknownItem(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Teapot", "Style 1", 1)
	assert.ErrorIs(t, err, models.ErrUnknownItem)

	cart, err := svc.GetCart("s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty(), "cart unchanged after a rejected add")
}

func TestAddItemRejectsInvalidStyle(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Can Glass", "Chrome", 1)
	assert.ErrorIs(t, err, models.ErrInvalidStyle)
}

func TestAddItemRejectsInvalidQuantity(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Can Glass", "Style 1", 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)

	_, err = svc.AddItem("s1", "Can Glass", "Style 1", -3)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestAddItemMergesAcrossCalls(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Coffee Cup", "Style 2", 1)
	require.NoError(t, err)
	cart, err := svc.AddItem("s1", "Coffee Cup", "Style 2", 4)
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 5, cart.Lines[0].Quantity)
	assert.Equal(t, int64(2399), cart.Lines[0].UnitPrice)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Coffee Cup", "Style 2", 1)
	require.NoError(t, err)

	cart, err := svc.GetCart("s2")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRemoveItemAndClear(t *testing.T) {
	svc := newTestCartService()

	_, err := svc.AddItem("s1", "Coffee Cup", "Style 2", 1)
	require.NoError(t, err)
	_, err = svc.AddItem("s1", "Can Glass", "Style 1", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem("s1", "Coffee Cup", "Style 2")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	// Removing something never added is fine.
	cart, err = svc.RemoveItem("s1", "Coffee Cup", "Style 2")
	require.NoError(t, err)
	assert.Len(t, cart.Lines, 1)

	require.NoError(t, svc.ClearCart("s1"))
	cart, err = svc.GetCart("s1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}
