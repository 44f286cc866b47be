package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"tumble_cup/internal/models"
)

// MailSender is the outbound transport; pkg/mailer implements it over
// SMTP.
type MailSender interface {
	Send(to, subject, htmlBody, textBody string) error
}

type MailService interface {
	SendOrderConfirmation(orderNumber string, form *CheckoutForm, cart *models.Cart, orderDate string) error
}

type mailService struct {
	sender MailSender
	tmpl   *template.Template
}

func NewMailService(sender MailSender) MailService {
	return &mailService{
		sender: sender,
		tmpl:   template.Must(template.New("receipt").Parse(receiptTemplate)),
	}
}

type receiptData struct {
	OrderNumber   string
	Name          string
	Email         string
	Phone         string
	Address       string
	Lines         []models.CartLine
	Total         int64
	OrderDate     string
	PaymentMethod string
	Reference     string
	Instructions  string
}

func (s *mailService) SendOrderConfirmation(orderNumber string, form *CheckoutForm, cart *models.Cart, orderDate string) error {
	_, reference := resolvePayment(form)
	data := receiptData{
		OrderNumber:   orderNumber,
		Name:          form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       joinAddress(form),
		Lines:         cart.Lines,
		Total:         cart.Total(),
		OrderDate:     orderDate,
		PaymentMethod: form.PaymentMethod,
		Reference:     orDefault(reference, "N/A"),
		Instructions:  orDefault(form.Instructions, "N/A"),
	}

	var html bytes.Buffer
	if err := s.tmpl.Execute(&html, data); err != nil {
		return fmt.Errorf("failed to render receipt: %w", err)
	}

	subject := fmt.Sprintf("%s has been placed successfully!", orderNumber)
	return s.sender.Send(form.Email, subject, html.String(), plainTextReceipt(data))
}

func joinAddress(form *CheckoutForm) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{form.Address, form.City, form.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func plainTextReceipt(data receiptData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\n\n")
	fmt.Fprintf(&b, "Order Number: %s\n", data.OrderNumber)
	fmt.Fprintf(&b, "Order Date: %s\n\n", data.OrderDate)
	for _, line := range data.Lines {
		fmt.Fprintf(&b, "%s (%s) x %d = Rs. %d\n", line.ItemName, line.Style, line.Quantity, line.Total())
	}
	fmt.Fprintf(&b, "\nTotal Amount: Rs. %d\n", data.Total)
	fmt.Fprintf(&b, "Payment Method: %s\n", data.PaymentMethod)
	fmt.Fprintf(&b, "Transaction Reference: %s\n", data.Reference)
	fmt.Fprintf(&b, "Special Instructions: %s\n\n", data.Instructions)
	fmt.Fprintf(&b, "We will process your order shortly. Thank you for shopping with Tumble Cup!\n")
	return b.String()
}

const receiptTemplate = `<html>
<body>
    <h2 style="color: orange;">Thank you for your order!</h2>
    <p><strong>Order Number:</strong> {{.OrderNumber}}</p>
    <p><strong>Name:</strong> {{.Name}}<br>
       <strong>Email:</strong> {{.Email}}<br>
       <strong>Phone:</strong> {{.Phone}}<br>
       <strong>Address:</strong> {{.Address}}</p>

    <h3>Order Summary</h3>
    <table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
        <thead style="background-color: #f2f2f2;">
            <tr>
                <th>Item</th>
                <th>Style</th>
                <th>Qty</th>
                <th>Unit Price</th>
                <th>Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.ItemName}}</td>
                <td>{{.Style}}</td>
                <td>{{.Quantity}}</td>
                <td>Rs. {{.UnitPrice}}</td>
                <td>Rs. {{.Total}}</td>
            </tr>
            {{end}}
            <tr>
                <td colspan="4"><strong>Total Amount</strong></td>
                <td><strong>Rs. {{.Total}}</strong></td>
            </tr>
        </tbody>
    </table>

    <p><strong>Payment Method:</strong> {{.PaymentMethod}}<br>
       <strong>Transaction Reference:</strong> {{.Reference}}</p>

    <p><strong>Special Instructions:</strong> {{.Instructions}}</p>

    <p>We will process your order shortly. Thank you for shopping with Tumble Cup!</p>
</body>
</html>
`
