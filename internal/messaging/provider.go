package messaging

import "context"

// Message describes one outbound template message: who receives it and which
// pre-approved template/locale to deliver. Populating the template with order
// data is the messaging platform's concern, not ours.
type Message struct {
	Recipient    string // Recipient is the destination phone number in international format, digits only.
	TemplateName string // TemplateName is the pre-approved template to send; empty means the configured default.
	LanguageCode string // LanguageCode is the template locale (e.g. "en_US"); empty means the configured default.
}

// Provider is an interface that defines a method for dispatching an outbound
// customer message. The Send method takes a context and a message, and returns
// an error if delivery could not be handed off to the messaging platform.
type Provider interface {
	Send(ctx context.Context, msg Message) error
}
