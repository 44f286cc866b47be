package models

import (
	"time"
)

// Order is one persisted line of a checkout. A single checkout writes one
// row per cart line, all sharing the same OrderNumber.
type Order struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	OrderNumber    string    `json:"order_number" gorm:"not null;index"`
	CustomerName   string    `json:"customer_name" gorm:"not null"`
	Email          string    `json:"email" gorm:"not null"`
	Phone          string    `json:"phone" gorm:"not null"`
	Address        string    `json:"address"`
	City           string    `json:"city"`
	PostalCode     string    `json:"postal_code"`
	ItemName       string    `json:"item_name" gorm:"not null"`
	ItemStyle      string    `json:"item_style" gorm:"not null"`
	Quantity       int       `json:"quantity" gorm:"not null"`
	Price          int64     `json:"price" gorm:"not null"`       // unit price in rupees
	TotalPrice     int64     `json:"total_price" gorm:"not null"` // quantity * unit price
	Instructions   string    `json:"instructions" gorm:"type:text"`
	OrderDate      time.Time `json:"order_date" gorm:"not null"`
	PaymentMethod  string    `json:"payment_method" gorm:"not null"`
	PaymentService string    `json:"payment_service"`
	TransactionID  string    `json:"transaction_id"`
	PaymentStatus  string    `json:"payment_status" gorm:"default:'Pending'"`
	Status         string    `json:"status" gorm:"default:'Pending'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderDateLayout is the customer-facing date format used on receipts,
// admin listings and CSV exports.
const OrderDateLayout = "02-January-2006"

func (o *Order) FormattedDate() string {
	return o.OrderDate.Format(OrderDateLayout)
}

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pending"
	PaymentProcessing PaymentStatus = "Processing"
	PaymentConfirmed  PaymentStatus = "Confirmed"
	PaymentCancelled  PaymentStatus = "Cancelled"
)

type PaymentMethod string

const (
	CashOnDelivery PaymentMethod = "Cash on Delivery"
	MobileMoney    PaymentMethod = "Mobile Money"
	BankTransfer   PaymentMethod = "Bank Transfer"
)

// ValidStatus reports whether s is a fulfillment status an admin may assign.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentProcessing, PaymentConfirmed, PaymentCancelled:
		return true
	}
	return false
}

// OrderFilter selects records for the admin listing. A zero Month means
// the current calendar month. Status allow-lists are ignored when empty.
type OrderFilter struct {
	Month           time.Month `json:"month"`
	SearchText      string     `json:"search_text"`
	Statuses        []string   `json:"statuses"`
	PaymentStatuses []string   `json:"payment_statuses"`
}

// CSVHeader lists the exported column names, matching the order table.
var CSVHeader = []string{
	"id", "order_number", "customer_name", "email", "phone",
	"address", "city", "postal_code", "item_name", "item_style",
	"quantity", "price", "total_price", "instructions", "order_date",
	"payment_method", "payment_service", "transaction_id",
	"payment_status", "status",
}
