package services

import (
	"regexp"
	"strings"
	"tumble_cup/internal/models"
)

// FieldError is one checkout form violation. Validation collects every
// violation so the customer sees the complete list at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CheckoutForm carries everything the customer submits at checkout.
type CheckoutForm struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	PostalCode     string `json:"postal_code"`
	Instructions   string `json:"instructions"`
	PaymentMethod  string `json:"payment_method"`
	PaymentService string `json:"payment_service"`
	TransactionID  string `json:"transaction_id"`
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// PhoneRule normalizes phone numbers for one deployment's country: a
// leading trunk prefix is swapped for the country calling code, and bare
// numbers get the country code prepended.
type PhoneRule struct {
	CountryCode string
	TrunkPrefix string
}

var nonDigits = regexp.MustCompile(`\D`)

// Normalize returns a leading + followed by digits only.
func (r PhoneRule) Normalize(raw string) string {
	digits := nonDigits.ReplaceAllString(raw, "")
	if digits == "" {
		return ""
	}
	switch {
	case r.TrunkPrefix != "" && strings.HasPrefix(digits, r.TrunkPrefix):
		digits = r.CountryCode + digits[len(r.TrunkPrefix):]
	case !strings.HasPrefix(digits, r.CountryCode):
		digits = r.CountryCode + digits
	}
	return "+" + digits
}

// CheckoutValidator applies the required-field and format rules ahead of
// persistence. RequireAddress toggles the address trio, which earlier
// storefront revisions treated as optional.
type CheckoutValidator struct {
	RequireAddress bool
	PhoneRule      PhoneRule
}

// Validate returns every violation found in the form. instructionsNeeded
// is true when the cart holds custom or hand-painted lines.
func (v *CheckoutValidator) Validate(form *CheckoutForm, instructionsNeeded bool) []FieldError {
	var errs []FieldError
	required := func(field, value, message string) {
		if strings.TrimSpace(value) == "" {
			errs = append(errs, FieldError{Field: field, Message: message})
		}
	}

	required("name", form.Name, "Name is required")
	required("email", form.Email, "Email is required")
	required("phone", form.Phone, "Phone is required")

	if strings.TrimSpace(form.Email) != "" && !emailPattern.MatchString(form.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Email address is not valid"})
	}

	if v.RequireAddress {
		required("address", form.Address, "Street address is required")
		required("city", form.City, "City is required")
		required("postal_code", form.PostalCode, "Postal code is required")
	}

	if instructionsNeeded {
		required("instructions", form.Instructions, "Instructions are required for custom/hand-painted items")
	}

	switch models.PaymentMethod(form.PaymentMethod) {
	case models.CashOnDelivery:
		// nothing further
	case models.MobileMoney:
		required("payment_service", form.PaymentService, "Mobile money service is required")
		required("transaction_id", form.TransactionID, "Transaction ID is required")
	case models.BankTransfer:
		required("transaction_id", form.TransactionID, "Transaction reference is required")
	default:
		errs = append(errs, FieldError{Field: "payment_method", Message: "Payment method is not valid"})
	}

	return errs
}
