// Package mailer sends order-confirmation emails to the restaurant staff
// through an SMTP relay.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/wneessen/go-mail"
)

// OrderDetails carries the fields rendered into the confirmation email body.
type OrderDetails struct {
	CustomerName        string // CustomerName is the name the customer ordered under.
	CustomerPhone       string // CustomerPhone is the customer's contact number.
	OrderItems          string // OrderItems is the free-text order summary.
	TotalAmount         string // TotalAmount is the order total in PKR, already formatted.
	DeliveryAddress     string // DeliveryAddress is where the order is delivered.
	SpecialInstructions string // SpecialInstructions is optional free text from the customer.
}

// Sender is an interface that defines a method for dispatching an
// order-confirmation email. It exists so the HTTP layer can be tested without
// a live SMTP connection.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, order OrderDetails) error
}

// Config holds the SMTP connection and addressing settings.
type Config struct {
	Host     string   // Host is the SMTP relay hostname.
	Port     int      // Port is the SMTP relay port (STARTTLS expected).
	Sender   string   // Sender is the From address and SMTP username.
	Password string   // Password is the SMTP password for the sender.
	To       []string // To lists the staff addresses that receive confirmations.
	CC       []string // CC lists optional carbon-copy addresses.
}

// ErrNoRecipients is returned when the mailer is configured without To addresses.
var ErrNoRecipients = errors.New("mailer has no recipient addresses")

const confirmationSubject = "Your Foods Spot Order Confirmation"

// confirmationBody is the plain-text template for the order email.
var confirmationBody = template.Must(template.New("confirmation").Parse(`Hello {{.CustomerName}},

Thank you for your order! Your order has been placed and will be delivered shortly.

---
Order Details:
---

Order: {{.OrderItems}}
Total Amount: {{.TotalAmount}} PKR

---
Delivery Information:
---

Name: {{.CustomerName}}
Phone Number: {{.CustomerPhone}}
Delivery Address: {{.DeliveryAddress}}

Special Instructions:
{{.SpecialInstructions}}

---

Thank you for choosing Foods Spot!

Sincerely,
The Foods Spot Team
`))

// SMTPMailer implements Sender over an SMTP relay with STARTTLS.
type SMTPMailer struct {
	client *mail.Client
	config Config
	log    *slog.Logger
}

// NewSMTPMailer creates a mailer from the given settings. It validates the
// addressing configuration but does not dial; the connection is established
// per send.
func NewSMTPMailer(config Config, log *slog.Logger) (*SMTPMailer, error) {
	if len(config.To) == 0 {
		return nil, ErrNoRecipients
	}

	client, err := mail.NewClient(config.Host,
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.Sender),
		mail.WithPassword(config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPMailer{client: client, config: config, log: log}, nil
}

// SendOrderConfirmation renders the confirmation body and delivers it to the
// configured To and CC addresses.
func (sm *SMTPMailer) SendOrderConfirmation(ctx context.Context, order OrderDetails) error {
	body, err := renderOrderBody(order)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err = msg.From(sm.config.Sender); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err = msg.To(sm.config.To...); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	if len(sm.config.CC) > 0 {
		if err = msg.Cc(sm.config.CC...); err != nil {
			return fmt.Errorf("invalid CC address: %w", err)
		}
	}
	msg.Subject(confirmationSubject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	sm.log.DebugContext(ctx, "Sending order confirmation email",
		"to", strings.Join(sm.config.To, ","), "cc", strings.Join(sm.config.CC, ","))

	if err = sm.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	sm.log.InfoContext(ctx, "Order confirmation email sent", "customer", order.CustomerName)
	return nil
}

// renderOrderBody fills the plain-text confirmation template.
func renderOrderBody(order OrderDetails) (string, error) {
	var buf strings.Builder
	if err := confirmationBody.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}
