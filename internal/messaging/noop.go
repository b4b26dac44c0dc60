package messaging

import (
	"context"
	"log/slog"
)

// NoopProvider logs outbound messages instead of delivering them. It keeps
// local environments working without WhatsApp platform credentials.
type NoopProvider struct {
	log *slog.Logger
}

// NewNoopProvider creates a provider that only logs.
func NewNoopProvider(log *slog.Logger) *NoopProvider {
	return &NoopProvider{log: log}
}

// Send logs the message and reports success.
func (np *NoopProvider) Send(ctx context.Context, msg Message) error {
	np.log.InfoContext(ctx, "Noop messaging provider: message not sent",
		"recipient", msg.Recipient, "template", msg.TemplateName, "language", msg.LanguageCode)
	return nil
}
