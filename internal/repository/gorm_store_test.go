package repository

import (
	"testing"
	"time"
	"tumble_cup/internal/crypto"
	"tumble_cup/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T, cipher *crypto.Cipher) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}))
	return NewGormStore(db, cipher, time.Second)
}

func TestGormStoreAppendAndList(t *testing.T) {
	store := newTestGormStore(t, nil)

	inserted, err := store.Append([]*models.Order{
		sampleOrder("#TC00001", "John Smith"),
		sampleOrder("#TC00001", "John Smith"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	orders, err := store.List(models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "#TC00001", orders[0].OrderNumber)
	assert.NotZero(t, orders[0].ID)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	numbers, err := store.OrderNumbers()
	require.NoError(t, err)
	assert.Equal(t, []string{"#TC00001", "#TC00001"}, numbers)
}

func TestGormStoreEncryptsPersonalFieldsAtRest(t *testing.T) {
	cipher, err := crypto.New("secret", "salt")
	require.NoError(t, err)
	store := newTestGormStore(t, cipher)

	order := sampleOrder("#TC00001", "John Smith")
	order.Address = "12 Mall Road"
	_, err = store.Append([]*models.Order{order})
	require.NoError(t, err)

	// The raw column holds ciphertext.
	raw, err := store.SampleEncrypted()
	require.NoError(t, err)
	assert.NotEqual(t, "John Smith", raw)
	decrypted, err := cipher.Decrypt(raw)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", decrypted)

	// Reads come back decrypted.
	orders, err := store.List(models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "John Smith", orders[0].CustomerName)
	assert.Equal(t, "x@example.com", orders[0].Email)
	assert.Equal(t, "12 Mall Road", orders[0].Address)
}

func TestGormStoreSampleEncryptedEmpty(t *testing.T) {
	store := newTestGormStore(t, nil)

	_, err := store.SampleEncrypted()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStoreUpdateStatus(t *testing.T) {
	store := newTestGormStore(t, nil)

	_, err := store.Append([]*models.Order{sampleOrder("#TC00001", "A")})
	require.NoError(t, err)

	orders, err := store.List(models.OrderFilter{})
	require.NoError(t, err)
	id := orders[0].ID

	require.NoError(t, store.UpdateStatus(id, string(models.StatusShipped)))
	require.NoError(t, store.UpdatePaymentStatus(id, string(models.PaymentConfirmed)))

	orders, err = store.List(models.OrderFilter{})
	require.NoError(t, err)
	assert.Equal(t, string(models.StatusShipped), orders[0].Status)
	assert.Equal(t, string(models.PaymentConfirmed), orders[0].PaymentStatus)

	assert.ErrorIs(t, store.UpdateStatus(9999, string(models.StatusShipped)), ErrNotFound)
	assert.ErrorIs(t, store.UpdatePaymentStatus(9999, string(models.PaymentConfirmed)), ErrNotFound)
}

func TestGormStoreDelete(t *testing.T) {
	store := newTestGormStore(t, nil)

	_, err := store.Append([]*models.Order{sampleOrder("#TC00001", "A")})
	require.NoError(t, err)

	orders, err := store.List(models.OrderFilter{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(orders[0].ID))
	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	assert.ErrorIs(t, store.Delete(orders[0].ID), ErrNotFound)
}

func TestGormStoreListFiltersByMonth(t *testing.T) {
	store := newTestGormStore(t, nil)

	current := sampleOrder("#TC00001", "A")
	previous := sampleOrder("#TC00002", "B")
	previous.OrderDate = time.Now().AddDate(0, 0, -45)
	_, err := store.Append([]*models.Order{current, previous})
	require.NoError(t, err)

	// Default filter keeps only the current month.
	orders, err := store.List(models.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "#TC00001", orders[0].OrderNumber)

	orders, err = store.List(models.OrderFilter{Month: previous.OrderDate.Month()})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "#TC00002", orders[0].OrderNumber)
}
