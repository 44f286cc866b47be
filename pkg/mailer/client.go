package mailer

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

var ErrTimeout = errors.New("email send timed out")

// Client sends transactional mail over authenticated SMTP.
type Client struct {
	dialer  *gomail.Dialer
	sender  string
	timeout time.Duration
}

func NewClient(host string, port int, username, password, sender string, timeout time.Duration) *Client {
	d := gomail.NewDialer(host, port, username, password)
	// Port 465 is implicit TLS; 587 negotiates STARTTLS on its own.
	d.SSL = port == 465

	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{dialer: d, sender: sender, timeout: timeout}
}

// Send delivers an HTML message with a plain-text alternative. The dialer
// exposes no deadline, so the send runs in a goroutine bounded by the
// configured timeout.
func (c *Client) Send(to, subject, htmlBody, textBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-time.After(c.timeout):
		return ErrTimeout
	}
}
