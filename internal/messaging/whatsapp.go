package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// graphAPIBaseURL is the Facebook Graph API endpoint for the Cloud API.
const graphAPIBaseURL = "https://graph.facebook.com/v19.0"

// WhatsAppProvider dispatches template messages through the WhatsApp Business
// Cloud API (Facebook Graph API).
type WhatsAppProvider struct {
	client          HTTPClient    // HTTP client for making requests
	baseURL         string        // Base URL for the Graph API
	accessToken     string        // Bearer token with messaging access
	phoneNumberID   string        // Identifier of the sending phone number
	defaultTemplate string        // Template name used when the message names none
	defaultLanguage string        // Template locale used when the message names none
	log             *slog.Logger  // Logger for logging operations
	limiter         *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the WhatsApp provider.
var (
	ErrWhatsAppEmptyRecipient = errors.New("whatsapp message has no recipient")
	ErrWhatsAppUnauthorized   = errors.New("whatsapp API unauthorized (invalid access token)")
	ErrWhatsAppNotAccepted    = errors.New("whatsapp API did not accept the message")
)

// whatsappRequest is the Cloud API template-message payload.
type whatsappRequest struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Template         whatsappTemplate `json:"template"`
}

type whatsappTemplate struct {
	Name     string           `json:"name"`
	Language whatsappLanguage `json:"language"`
}

type whatsappLanguage struct {
	Code string `json:"code"`
}

// whatsappResponse is the subset of the Cloud API response we care about.
type whatsappResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// NewWhatsAppProvider creates a new WhatsApp Cloud API provider.
func NewWhatsAppProvider(config ProviderConfig, log *slog.Logger) *WhatsAppProvider {
	const timeout = 10

	return &WhatsAppProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:         graphAPIBaseURL,
		accessToken:     config.AccessToken,
		phoneNumberID:   config.PhoneNumberID,
		defaultTemplate: config.DefaultTemplate,
		defaultLanguage: config.DefaultLanguage,
		log:             log,
		limiter:         rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimit),
	}
}

// NewWhatsAppProviderWithClient allows injecting a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewWhatsAppProviderWithClient(
	client HTTPClient,
	config ProviderConfig,
	limiter *rate.Limiter,
	log *slog.Logger,
) *WhatsAppProvider {
	return &WhatsAppProvider{
		client:          client,
		baseURL:         graphAPIBaseURL,
		accessToken:     config.AccessToken,
		phoneNumberID:   config.PhoneNumberID,
		defaultTemplate: config.DefaultTemplate,
		defaultLanguage: config.DefaultLanguage,
		log:             log,
		limiter:         limiter,
	}
}

// Send delivers a template message through the Cloud API. Template name and
// locale fall back to the configured defaults when the message leaves them
// empty.
func (wp *WhatsAppProvider) Send(ctx context.Context, msg Message) error {
	// Rate limit
	if err := wp.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	if msg.Recipient == "" {
		return ErrWhatsAppEmptyRecipient
	}

	template := msg.TemplateName
	if template == "" {
		template = wp.defaultTemplate
	}
	language := msg.LanguageCode
	if language == "" {
		language = wp.defaultLanguage
	}

	wp.log.DebugContext(ctx, "Sending WhatsApp template message",
		"recipient", msg.Recipient, "template", template, "language", language)

	payload := whatsappRequest{
		MessagingProduct: "whatsapp",
		To:               msg.Recipient,
		Type:             "template",
		Template: whatsappTemplate{
			Name:     template,
			Language: whatsappLanguage{Code: language},
		},
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode whatsapp payload: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/messages", wp.baseURL, wp.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(rawPayload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+wp.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := wp.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute whatsapp request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrWhatsAppUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		wp.log.ErrorContext(ctx, "WhatsApp API error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("whatsapp API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var result whatsappResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to decode whatsapp response: %w", err)
	}

	if len(result.Messages) == 0 {
		return ErrWhatsAppNotAccepted
	}

	wp.log.InfoContext(ctx, "WhatsApp message accepted",
		"recipient", msg.Recipient, "message_id", result.Messages[0].ID)

	return nil
}
