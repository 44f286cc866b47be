package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"sync"
	"time"
	"tumble_cup/internal/models"
	"tumble_cup/internal/repository"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("status is not valid")
)

// CheckoutResult summarizes one order submission. Email delivery is best
// effort: EmailError is set when the receipt could not be sent, but the
// order stays persisted.
type CheckoutResult struct {
	OrderNumber    string `json:"order_number"`
	LinesSubmitted int    `json:"lines_submitted"`
	LinesFailed    int    `json:"lines_failed"`
	Total          int64  `json:"total"`
	OrderDate      string `json:"order_date"`
	EmailSent      bool   `json:"email_sent"`
	EmailError     string `json:"email_error,omitempty"`
}

type OrderService interface {
	// Checkout validates the form against the session cart and, when
	// clean, persists one record per cart line under a fresh order
	// number, sends the receipt and clears the cart. Field violations
	// come back as the second return with nothing persisted.
	Checkout(sessionID string, form *CheckoutForm) (*CheckoutResult, []FieldError, error)
	NextOrderNumber() (string, error)
	ListOrders(filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(id uint, status string) error
	UpdatePaymentStatus(id uint, status string) error
	DeleteOrder(id uint) error
	CountOrders() (int64, error)
	ExportCSV(filter models.OrderFilter) ([]byte, error)
}

type orderService struct {
	store     repository.OrderStore
	carts     CartService
	cartStore CartStore
	validator *CheckoutValidator
	mail      MailService

	// Serializes read-max-then-append order number assignment.
	seqMu sync.Mutex
}

func NewOrderService(store repository.OrderStore, carts CartService, cartStore CartStore, validator *CheckoutValidator, mail MailService) OrderService {
	return &orderService{
		store:     store,
		carts:     carts,
		cartStore: cartStore,
		validator: validator,
		mail:      mail,
	}
}

const orderNumberPrefix = "#TC"

var orderNumberPattern = regexp.MustCompile(`^#TC(\d+)$`)

// nextOrderNumber scans the existing order numbers for the highest #TC
// suffix and returns the next one, zero-padded to five digits. Malformed
// values are ignored; an empty history yields #TC00001.
func nextOrderNumber(history []string) string {
	max := 0
	for _, number := range history {
		m := orderNumberPattern.FindStringSubmatch(number)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= max {
			continue
		}
		max = n
	}
	return fmt.Sprintf("%s%05d", orderNumberPrefix, max+1)
}

func (s *orderService) NextOrderNumber() (string, error) {
	numbers, err := s.store.OrderNumbers()
	if err != nil {
		return "", err
	}
	return nextOrderNumber(numbers), nil
}

func (s *orderService) Checkout(sessionID string, form *CheckoutForm) (*CheckoutResult, []FieldError, error) {
	cart, err := s.carts.GetCart(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if cart.IsEmpty() {
		return nil, nil, ErrEmptyCart
	}

	catalog := s.carts.Catalog()
	if fieldErrs := s.validator.Validate(form, cart.RequiresInstructions(catalog)); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	phone := s.validator.PhoneRule.Normalize(form.Phone)
	paymentService, transactionID := resolvePayment(form)
	orderDate := time.Now()

	records := make([]*models.Order, 0, len(cart.Lines))
	for i := range cart.Lines {
		line := &cart.Lines[i]
		records = append(records, &models.Order{
			CustomerName:   form.Name,
			Email:          form.Email,
			Phone:          phone,
			Address:        form.Address,
			City:           form.City,
			PostalCode:     form.PostalCode,
			ItemName:       line.ItemName,
			ItemStyle:      line.Style,
			Quantity:       line.Quantity,
			Price:          line.UnitPrice,
			TotalPrice:     line.Total(),
			Instructions:   form.Instructions,
			OrderDate:      orderDate,
			PaymentMethod:  form.PaymentMethod,
			PaymentService: paymentService,
			TransactionID:  transactionID,
			PaymentStatus:  string(models.PaymentPending),
			Status:         string(models.StatusPending),
		})
	}

	s.seqMu.Lock()
	numbers, err := s.store.OrderNumbers()
	if err != nil {
		s.seqMu.Unlock()
		return nil, nil, fmt.Errorf("failed to assign order number: %w", err)
	}
	orderNumber := nextOrderNumber(numbers)
	for _, r := range records {
		r.OrderNumber = orderNumber
	}
	inserted, err := s.store.Append(records)
	s.seqMu.Unlock()

	if inserted == 0 {
		if err == nil {
			err = errors.New("no order lines were inserted")
		}
		return nil, nil, fmt.Errorf("failed to submit order: %w", err)
	}

	result := &CheckoutResult{
		OrderNumber:    orderNumber,
		LinesSubmitted: inserted,
		LinesFailed:    len(records) - inserted,
		Total:          cart.Total(),
		OrderDate:      orderDate.Format(models.OrderDateLayout),
	}

	if mailErr := s.mail.SendOrderConfirmation(orderNumber, form, cart, result.OrderDate); mailErr != nil {
		log.Printf("Failed to send confirmation for %s: %v", orderNumber, mailErr)
		result.EmailError = mailErr.Error()
	} else {
		result.EmailSent = true
	}

	if clearErr := s.cartStore.Delete(sessionID); clearErr != nil {
		log.Printf("Failed to clear cart session %s: %v", sessionID, clearErr)
	}
	return result, nil, nil
}

// resolvePayment mirrors the checkout form rules: bank transfers record
// "Bank Transfer" as the service, cash on delivery records nothing.
func resolvePayment(form *CheckoutForm) (service, transactionID string) {
	switch models.PaymentMethod(form.PaymentMethod) {
	case models.MobileMoney:
		return form.PaymentService, form.TransactionID
	case models.BankTransfer:
		return string(models.BankTransfer), form.TransactionID
	default:
		return "", ""
	}
}

func (s *orderService) ListOrders(filter models.OrderFilter) ([]models.Order, error) {
	return s.store.List(filter)
}

func (s *orderService) UpdateStatus(id uint, status string) error {
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.store.UpdateStatus(id, status)
}

func (s *orderService) UpdatePaymentStatus(id uint, status string) error {
	if !models.ValidPaymentStatus(status) {
		return ErrInvalidStatus
	}
	return s.store.UpdatePaymentStatus(id, status)
}

func (s *orderService) DeleteOrder(id uint) error {
	return s.store.Delete(id)
}

func (s *orderService) CountOrders() (int64, error) {
	return s.store.Count()
}

// ExportCSV renders the filtered order list as plain CSV with a header
// row matching the order columns.
func (s *orderService) ExportCSV(filter models.OrderFilter) ([]byte, error) {
	orders, err := s.store.List(filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(models.CSVHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range orders {
		o := &orders[i]
		row := []string{
			strconv.FormatUint(uint64(o.ID), 10),
			o.OrderNumber,
			o.CustomerName,
			o.Email,
			o.Phone,
			o.Address,
			o.City,
			o.PostalCode,
			o.ItemName,
			o.ItemStyle,
			strconv.Itoa(o.Quantity),
			strconv.FormatInt(o.Price, 10),
			strconv.FormatInt(o.TotalPrice, 10),
			o.Instructions,
			o.FormattedDate(),
			o.PaymentMethod,
			o.PaymentService,
			o.TransactionID,
			o.PaymentStatus,
			o.Status,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
