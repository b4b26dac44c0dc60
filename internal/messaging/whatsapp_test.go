package messaging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/foodsspot/beeline/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newTestProvider(client messaging.HTTPClient) *messaging.WhatsAppProvider {
	config := messaging.ProviderConfig{
		AccessToken:     "test-token",
		PhoneNumberID:   "1234567890",
		DefaultTemplate: "hello_world",
		DefaultLanguage: "en_US",
	}
	return messaging.NewWhatsAppProviderWithClient(
		client, config, rate.NewLimiter(rate.Inf, 1), slog.Default(),
	)
}

func TestWhatsAppProvider_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("successful send", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request shape
				assert.Equal(t, "POST", req.Method)
				assert.Equal(t, "https://graph.facebook.com/v19.0/1234567890/messages", req.URL.String())
				assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				rawBody, err := io.ReadAll(req.Body)
				require.NoError(t, err)

				var payload map[string]any
				require.NoError(t, json.Unmarshal(rawBody, &payload))
				assert.Equal(t, "whatsapp", payload["messaging_product"])
				assert.Equal(t, "923001234567", payload["to"])
				assert.Equal(t, "template", payload["type"])

				responseBody := `{"messages":[{"id":"wamid.test"}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{
			Recipient:    "923001234567",
			TemplateName: "order_confirmation",
			LanguageCode: "en_US",
		})

		require.NoError(t, err)
	})

	t.Run("defaults fill template and language", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				rawBody, err := io.ReadAll(req.Body)
				require.NoError(t, err)

				var payload struct {
					Template struct {
						Name     string `json:"name"`
						Language struct {
							Code string `json:"code"`
						} `json:"language"`
					} `json:"template"`
				}
				require.NoError(t, json.Unmarshal(rawBody, &payload))
				assert.Equal(t, "hello_world", payload.Template.Name)
				assert.Equal(t, "en_US", payload.Template.Language.Code)

				responseBody := `{"messages":[{"id":"wamid.test"}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{Recipient: "923001234567"})

		require.NoError(t, err)
	})

	t.Run("empty recipient", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("no request should be sent without a recipient")
				return nil, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{})

		require.Error(t, err)
		assert.ErrorIs(t, err, messaging.ErrWhatsAppEmptyRecipient)
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusUnauthorized,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":{"message":"Invalid OAuth access token"}}`)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{Recipient: "923001234567"})

		require.Error(t, err)
		assert.ErrorIs(t, err, messaging.ErrWhatsAppUnauthorized)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`{"error":{"message":"Rate limit hit"}}`)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{Recipient: "923001234567"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "whatsapp API returned status 429")
	})

	t.Run("response without accepted message", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"messages":[]}`)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{Recipient: "923001234567"})

		require.Error(t, err)
		assert.ErrorIs(t, err, messaging.ErrWhatsAppNotAccepted)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`invalid json`)),
				}, nil
			},
		}

		provider := newTestProvider(mockClient)
		err := provider.Send(ctx, messaging.Message{Recipient: "923001234567"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode whatsapp response")
	})
}
