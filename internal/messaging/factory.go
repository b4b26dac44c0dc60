package messaging

import (
	"errors"
	"fmt"
	"log/slog"
)

// ProviderType represents the type of messaging provider.
type ProviderType string

const (
	// ProviderTypeWhatsApp represents the WhatsApp Business Cloud API provider.
	ProviderTypeWhatsApp ProviderType = "whatsapp"
	// ProviderTypeNoop represents a provider that logs instead of sending,
	// for local development without platform credentials.
	ProviderTypeNoop ProviderType = "noop"
)

// ProviderConfig holds configuration for creating a messaging provider.
type ProviderConfig struct {
	Type            ProviderType // Type of provider to create
	AccessToken     string       // Bearer token for the messaging platform (used by WhatsApp provider)
	PhoneNumberID   string       // Sending phone number identifier (used by WhatsApp provider)
	DefaultTemplate string       // Template name used when a message does not name one
	DefaultLanguage string       // Template locale used when a message does not name one
	RateLimit       int          // Requests per second allowed against the platform API
	Logger          *slog.Logger // Logger for the provider
}

// NewProvider creates a messaging provider based on the provided configuration.
// It applies the factory pattern to decouple provider instantiation from the
// request-handling layer.
//
// Supported provider types:
// - "whatsapp": WhatsApp Business Cloud API (requires access token and phone number ID)
// - "noop": logs messages instead of sending them
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeWhatsApp:
		return newWhatsAppProvider(config)
	case ProviderTypeNoop:
		return NewNoopProvider(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newWhatsAppProvider(config ProviderConfig) (Provider, error) {
	if config.AccessToken == "" {
		return nil, errors.New("access token is required for WhatsApp provider")
	}
	if config.PhoneNumberID == "" {
		return nil, errors.New("phone number ID is required for WhatsApp provider")
	}

	if config.RateLimit == 0 {
		config.RateLimit = 10
		config.Logger.Warn("Rate limit for WhatsApp API not set, set a default value", "value", config.RateLimit)
	}

	return NewWhatsAppProvider(config, config.Logger), nil
}
