package services

import (
	"errors"
	"testing"
	"tumble_cup/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	to, subject, html, text string
	err                     error
}

func (f *fakeSender) Send(to, subject, htmlBody, textBody string) error {
	if f.err != nil {
		return f.err
	}
	f.to = to
	f.subject = subject
	f.html = htmlBody
	f.text = textBody
	return nil
}

func TestSendOrderConfirmationRendersReceipt(t *testing.T) {
	sender := &fakeSender{}
	svc := NewMailService(sender)

	cart := models.NewCart()
	cart.Add("Classic Tumbler", "Hand Painted", 2, 4999)
	cart.Add("Can Glass", "Style 1", 1, 1999)

	form := validForm()
	form.PaymentMethod = string(models.BankTransfer)
	form.TransactionID = "REF-99"
	form.Instructions = "Paint a mountain scene"

	err := svc.SendOrderConfirmation("#TC00042", form, cart, "31-August-2026")
	require.NoError(t, err)

	assert.Equal(t, "ayesha@example.com", sender.to)
	assert.Equal(t, "#TC00042 has been placed successfully!", sender.subject)

	assert.Contains(t, sender.html, "#TC00042")
	assert.Contains(t, sender.html, "Classic Tumbler")
	assert.Contains(t, sender.html, "Hand Painted")
	assert.Contains(t, sender.html, "Rs. 4999")
	assert.Contains(t, sender.html, "Rs. 11997", "total amount rendered")
	assert.Contains(t, sender.html, "REF-99")
	assert.Contains(t, sender.html, "Paint a mountain scene")
	assert.Contains(t, sender.html, "12 Mall Road, Lahore, 54000")

	assert.Contains(t, sender.text, "#TC00042")
	assert.Contains(t, sender.text, "Total Amount: Rs. 11997")
}

func TestSendOrderConfirmationDefaultsForCash(t *testing.T) {
	sender := &fakeSender{}
	svc := NewMailService(sender)

	cart := models.NewCart()
	cart.Add("Can Glass", "Style 1", 1, 1999)

	err := svc.SendOrderConfirmation("#TC00001", validForm(), cart, "31-August-2026")
	require.NoError(t, err)

	assert.Contains(t, sender.html, "Transaction Reference:</strong> N/A")
	assert.Contains(t, sender.html, "Special Instructions:</strong> N/A")
}

func TestSendOrderConfirmationPropagatesTransportError(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	svc := NewMailService(sender)

	cart := models.NewCart()
	cart.Add("Can Glass", "Style 1", 1, 1999)

	err := svc.SendOrderConfirmation("#TC00001", validForm(), cart, "31-August-2026")
	assert.Error(t, err)
}
