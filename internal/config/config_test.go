package config_test

import (
	"testing"

	"github.com/foodsspot/beeline/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the variables without which MustLoad refuses to start.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "testToken")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")
	t.Setenv("WHATSAPP_BUSINESS_ID", "67890")
	t.Setenv("EMAIL_SENDER", "orders@foodsspot.example")
	t.Setenv("EMAIL_PASSWORD", "emailpass")
	t.Setenv("EMAIL_RECEIVER", "kitchen@foodsspot.example,manager@foodsspot.example")
}

func Test_MustLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BEELINE_ENV", "local")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)

	assert.InDelta(t, 50.0, cfg.Delivery.CostPerKm, 0.0001)
	assert.InDelta(t, 25.0, cfg.Delivery.AverageSpeedKmph, 0.0001)
	assert.InDelta(t, 30.0, cfg.Delivery.MinCookingTimeMins, 0.0001)
	assert.InDelta(t, 100.0, cfg.Delivery.MinDeliveryCharge, 0.0001)

	require.Len(t, cfg.Branches, 2)
	assert.Equal(t, "Foods Spot FB Area", cfg.Branches[0].Name)
	assert.Equal(t, "Foods Spot New Karachi Branch", cfg.Branches[1].Name)

	assert.Equal(t, "whatsapp", cfg.Messaging.Provider)
	assert.Equal(t, "testToken", cfg.Messaging.AccessToken)
	assert.Equal(t, "12345", cfg.Messaging.PhoneNumberID)
	assert.Equal(t, "hello_world", cfg.Messaging.Template)
	assert.Equal(t, "en_US", cfg.Messaging.Language)
	assert.Equal(t, 10, cfg.Messaging.RateLimit)

	assert.Equal(t, "smtp.hostinger.com", cfg.Email.SMTPHost)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "orders@foodsspot.example", cfg.Email.Sender)
	assert.Equal(t, []string{"kitchen@foodsspot.example", "manager@foodsspot.example"}, cfg.Email.To)
	assert.Empty(t, cfg.Email.CC)
}

func Test_MustLoadBranchOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BEELINE_BRANCHES", "Clifton=24.8138,67.0300; DHA Phase 6=24.7946,67.0466")

	cfg := config.MustLoad()

	require.Len(t, cfg.Branches, 2)
	assert.Equal(t, "Clifton", cfg.Branches[0].Name)
	assert.InDelta(t, 24.8138, cfg.Branches[0].Location.Latitude, 0.0001)
	assert.InDelta(t, 67.0300, cfg.Branches[0].Location.Longitude, 0.0001)
	assert.Equal(t, "DHA Phase 6", cfg.Branches[1].Name)
}

func Test_MustLoadCCList(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_CC", "owner@foodsspot.example, audit@foodsspot.example")

	cfg := config.MustLoad()

	assert.Equal(t, []string{"owner@foodsspot.example", "audit@foodsspot.example"}, cfg.Email.CC)
}

func Test_MustLoadNoopProviderSkipsWhatsAppChecks(t *testing.T) {
	t.Setenv("BEELINE_MESSAGING_PROVIDER", "noop")
	t.Setenv("EMAIL_SENDER", "orders@foodsspot.example")
	t.Setenv("EMAIL_PASSWORD", "emailpass")
	t.Setenv("EMAIL_RECEIVER", "kitchen@foodsspot.example")

	cfg := config.MustLoad()

	assert.Equal(t, "noop", cfg.Messaging.Provider)
	assert.Empty(t, cfg.Messaging.AccessToken)
}

func TestMustLoad_PortError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BEELINE_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for API server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_BranchesError(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BEELINE_BRANCHES", "Clifton;24.8138,67.0300")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}

func TestMustLoad_BranchOutOfRange(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BEELINE_BRANCHES", "Nowhere=95.0,67.0")

	assert.Panics(t, func() {
		config.MustLoad()
	})
}

func TestMustLoad_MissingEmailSender(t *testing.T) {
	t.Setenv("BEELINE_MESSAGING_PROVIDER", "noop")
	t.Setenv("EMAIL_PASSWORD", "emailpass")
	t.Setenv("EMAIL_RECEIVER", "kitchen@foodsspot.example")

	assert.PanicsWithValue(t, "environment variable EMAIL_SENDER is required", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MissingWhatsAppToken(t *testing.T) {
	t.Setenv("EMAIL_SENDER", "orders@foodsspot.example")
	t.Setenv("EMAIL_PASSWORD", "emailpass")
	t.Setenv("EMAIL_RECEIVER", "kitchen@foodsspot.example")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "12345")
	t.Setenv("WHATSAPP_BUSINESS_ID", "67890")

	assert.PanicsWithValue(t, "environment variable WHATSAPP_ACCESS_TOKEN is required", func() {
		config.MustLoad()
	})
}
