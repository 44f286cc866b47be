package repository

import (
	"errors"
	"strings"
	"time"
	"tumble_cup/internal/models"
)

var ErrNotFound = errors.New("order not found")

// OrderStore is the persistence contract shared by the relational and
// spreadsheet backends.
type OrderStore interface {
	// Append inserts the records, continuing past per-record failures,
	// and reports how many made it in.
	Append(orders []*models.Order) (int, error)
	List(filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(id uint, status string) error
	UpdatePaymentStatus(id uint, status string) error
	Delete(id uint) error
	Count() (int64, error)
	// OrderNumbers returns the full order_number column, for sequencing.
	OrderNumbers() ([]string, error)
}

// MatchesFilter applies the admin listing filter to one record. Both
// backends read whole result sets and filter here, so month, search and
// status semantics cannot drift between them.
func MatchesFilter(o *models.Order, f models.OrderFilter) bool {
	month := f.Month
	if month == 0 {
		month = time.Now().Month()
	}
	if o.OrderDate.Month() != month {
		return false
	}
	if f.SearchText != "" {
		needle := strings.ToLower(f.SearchText)
		if !strings.Contains(strings.ToLower(o.CustomerName), needle) &&
			!strings.Contains(strings.ToLower(o.OrderNumber), needle) {
			return false
		}
	}
	if len(f.Statuses) > 0 && !contains(f.Statuses, o.Status) {
		return false
	}
	if len(f.PaymentStatuses) > 0 && !contains(f.PaymentStatuses, o.PaymentStatus) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
