package repository

import (
	"context"
	"fmt"
	"log"
	"time"
	"tumble_cup/internal/crypto"
	"tumble_cup/internal/models"

	"gorm.io/gorm"
)

// GormStore persists orders in a relational table (sqlite or postgres).
// When a cipher is supplied, personal fields are encrypted before every
// write and decrypted on every read.
type GormStore struct {
	db      *gorm.DB
	cipher  *crypto.Cipher
	timeout time.Duration
}

func NewGormStore(db *gorm.DB, cipher *crypto.Cipher, timeout time.Duration) *GormStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &GormStore{db: db, cipher: cipher, timeout: timeout}
}

func (s *GormStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *GormStore) Append(orders []*models.Order) (int, error) {
	inserted := 0
	var lastErr error
	for _, o := range orders {
		record := *o
		if err := s.encryptFields(&record); err != nil {
			lastErr = err
			continue
		}
		ctx, cancel := s.ctx()
		err := s.db.WithContext(ctx).Create(&record).Error
		cancel()
		if err != nil {
			log.Printf("Failed to insert order line %s/%s: %v", o.ItemName, o.ItemStyle, err)
			lastErr = err
			continue
		}
		o.ID = record.ID
		inserted++
	}
	if inserted == 0 && lastErr != nil {
		return 0, fmt.Errorf("failed to insert any order line: %w", lastErr)
	}
	return inserted, nil
}

func (s *GormStore) List(filter models.OrderFilter) ([]models.Order, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var records []models.Order
	if err := s.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	matched := make([]models.Order, 0, len(records))
	for i := range records {
		if err := s.decryptFields(&records[i]); err != nil {
			return nil, err
		}
		if MatchesFilter(&records[i], filter) {
			matched = append(matched, records[i])
		}
	}
	return matched, nil
}

func (s *GormStore) UpdateStatus(id uint, status string) error {
	return s.updateColumn(id, "status", status)
}

func (s *GormStore) UpdatePaymentStatus(id uint, status string) error {
	return s.updateColumn(id, "payment_status", status)
}

func (s *GormStore) updateColumn(id uint, column, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	result := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("failed to update order %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(id uint) error {
	ctx, cancel := s.ctx()
	defer cancel()

	result := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Count() (int64, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (s *GormStore) OrderNumbers() ([]string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var numbers []string
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Pluck("order_number", &numbers).Error; err != nil {
		return nil, fmt.Errorf("failed to read order numbers: %w", err)
	}
	return numbers, nil
}

// SampleEncrypted returns one stored customer_name as written, for the
// admin encryption probe. ErrNotFound when the table is empty.
func (s *GormStore) SampleEncrypted() (string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var raw []string
	err := s.db.WithContext(ctx).Model(&models.Order{}).Limit(1).Pluck("customer_name", &raw).Error
	if err != nil {
		return "", fmt.Errorf("failed to sample record: %w", err)
	}
	if len(raw) == 0 {
		return "", ErrNotFound
	}
	return raw[0], nil
}

// Cipher exposes the store's field cipher, nil when encryption is off.
func (s *GormStore) Cipher() *crypto.Cipher {
	return s.cipher
}

func (s *GormStore) encryptFields(o *models.Order) error {
	if s.cipher == nil {
		return nil
	}
	for _, f := range []*string{&o.CustomerName, &o.Email, &o.Phone, &o.Address} {
		enc, err := s.cipher.Encrypt(*f)
		if err != nil {
			return fmt.Errorf("failed to encrypt field: %w", err)
		}
		*f = enc
	}
	return nil
}

func (s *GormStore) decryptFields(o *models.Order) error {
	if s.cipher == nil {
		return nil
	}
	for _, f := range []*string{&o.CustomerName, &o.Email, &o.Phone, &o.Address} {
		dec, err := s.cipher.Decrypt(*f)
		if err != nil {
			return fmt.Errorf("failed to decrypt field: %w", err)
		}
		*f = dec
	}
	return nil
}
