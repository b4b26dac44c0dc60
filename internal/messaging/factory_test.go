package messaging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/foodsspot/beeline/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	logger := slog.Default()

	t.Run("whatsapp provider", func(t *testing.T) {
		provider, err := messaging.NewProvider(messaging.ProviderConfig{
			Type:          messaging.ProviderTypeWhatsApp,
			AccessToken:   "token",
			PhoneNumberID: "42",
			RateLimit:     5,
			Logger:        logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &messaging.WhatsAppProvider{}, provider)
	})

	t.Run("whatsapp provider without token", func(t *testing.T) {
		_, err := messaging.NewProvider(messaging.ProviderConfig{
			Type:          messaging.ProviderTypeWhatsApp,
			PhoneNumberID: "42",
			Logger:        logger,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "access token is required")
	})

	t.Run("whatsapp provider without phone number ID", func(t *testing.T) {
		_, err := messaging.NewProvider(messaging.ProviderConfig{
			Type:        messaging.ProviderTypeWhatsApp,
			AccessToken: "token",
			Logger:      logger,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "phone number ID is required")
	})

	t.Run("noop provider", func(t *testing.T) {
		provider, err := messaging.NewProvider(messaging.ProviderConfig{
			Type:   messaging.ProviderTypeNoop,
			Logger: logger,
		})

		require.NoError(t, err)
		assert.IsType(t, &messaging.NoopProvider{}, provider)

		// Noop always succeeds.
		require.NoError(t, provider.Send(context.Background(), messaging.Message{Recipient: "123"}))
	})

	t.Run("unsupported provider type", func(t *testing.T) {
		_, err := messaging.NewProvider(messaging.ProviderConfig{
			Type:   messaging.ProviderType("telegraph"),
			Logger: logger,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported provider type")
	})
}
