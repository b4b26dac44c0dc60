package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/foodsspot/beeline/internal/models"
	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the delivery backend.
// It includes the environment, server port, the delivery pricing parameters,
// the branch registry, and the credentials for the messaging and email
// collaborators.
//
// Fields:
// - Env: The current environment (e.g., local, dev, prod).
// - Port: The port the API server listens on.
// - Delivery: The fixed pricing and timing parameters for quotes.
// - Branches: The ordered, immutable branch registry quoted against.
// - Messaging: Settings for the outbound messaging provider.
// - Email: Settings for the SMTP order-confirmation mailer.
type Config struct {
	Env       string          // Env is the current environment: local, dev, prod.
	Port      int             // Port is the API server port.
	Delivery  DeliveryConfig  // Delivery holds the quote calculation parameters.
	Branches  []models.Branch // Branches is the ordered branch registry.
	Messaging MessagingConfig // Messaging holds the outbound messaging settings.
	Email     EmailConfig     // Email holds the SMTP mailer settings.
}

// DeliveryConfig holds the four tunable quote parameters. They are fixed for
// the lifetime of the process.
type DeliveryConfig struct {
	CostPerKm          float64 // CostPerKm is the delivery charge per kilometre, in PKR.
	AverageSpeedKmph   float64 // AverageSpeedKmph is the assumed rider travel speed.
	MinCookingTimeMins float64 // MinCookingTimeMins is the minimum kitchen time added to every estimate.
	MinDeliveryCharge  float64 // MinDeliveryCharge is the cost floor in PKR.
}

// MessagingConfig holds the settings for the outbound messaging provider.
type MessagingConfig struct {
	Provider      string // Provider selects the messaging implementation (whatsapp, noop).
	AccessToken   string // AccessToken is the messaging platform bearer token.
	PhoneNumberID string // PhoneNumberID identifies the sending phone number.
	BusinessID    string // BusinessID identifies the WhatsApp business account.
	Template      string // Template is the default template name for outbound messages.
	Language      string // Language is the default template locale.
	RateLimit     int    // RateLimit is the allowed requests per second against the platform.
}

// EmailConfig struct holds the configuration details for the SMTP mailer.
type EmailConfig struct {
	SMTPHost string   // SMTPHost is the SMTP relay hostname.
	SMTPPort int      // SMTPPort is the SMTP relay port.
	Sender   string   // Sender is the From address and SMTP username.
	Password string   // Password is the SMTP password.
	To       []string // To lists the confirmation recipients.
	CC       []string // CC lists optional carbon-copy recipients.
}

// defaultBranches is the production Foods Spot registry, used when no
// override is configured. The order is part of the contract: distance ties
// are broken in favour of the earlier branch.
var defaultBranches = []models.Branch{
	{Name: "Foods Spot FB Area", Location: models.Coordinates{Latitude: 24.9268539, Longitude: 67.0726341}},
	{Name: "Foods Spot New Karachi Branch", Location: models.Coordinates{Latitude: 24.9668316, Longitude: 67.0682923}},
}

// MustLoad loads the configuration from the environment and returns a Config.
// Missing or malformed required settings are fatal: the process refuses to
// start rather than run degraded.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("BEELINE_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	rateLimit, err := strconv.Atoi(setDefaultEnv("WHATSAPP_RATE_LIMIT", "10"))
	if err != nil {
		panic("failed to parse WhatsApp rate limit from configuration, must be an integer")
	}

	smtpPort, err := strconv.Atoi(setDefaultEnv("SMTP_PORT", "587"))
	if err != nil {
		panic("failed to parse SMTP port from configuration, must be an integer")
	}

	branches := defaultBranches
	if raw := os.Getenv("BEELINE_BRANCHES"); raw != "" {
		branches, err = parseBranches(raw)
		if err != nil {
			panic("failed to parse branch registry from configuration: " + err.Error())
		}
	}
	if len(branches) == 0 {
		panic("branch registry is empty, at least one branch is required")
	}

	cfg := &Config{
		Env:      setDefaultEnv("BEELINE_ENV", "production"),
		Port:     port,
		Branches: branches,
		Delivery: DeliveryConfig{
			CostPerKm:          mustParseFloat("BEELINE_COST_PER_KM", "50"),
			AverageSpeedKmph:   mustParseFloat("BEELINE_AVERAGE_SPEED_KMPH", "25"),
			MinCookingTimeMins: mustParseFloat("BEELINE_MIN_COOKING_TIME_MINS", "30"),
			MinDeliveryCharge:  mustParseFloat("BEELINE_MIN_DELIVERY_CHARGE_PKR", "100"),
		},
		Messaging: MessagingConfig{
			Provider:      setDefaultEnv("BEELINE_MESSAGING_PROVIDER", "whatsapp"),
			AccessToken:   os.Getenv("WHATSAPP_ACCESS_TOKEN"),
			PhoneNumberID: os.Getenv("WHATSAPP_PHONE_NUMBER_ID"),
			BusinessID:    os.Getenv("WHATSAPP_BUSINESS_ID"),
			Template:      setDefaultEnv("WHATSAPP_TEMPLATE_NAME", "hello_world"),
			Language:      setDefaultEnv("WHATSAPP_TEMPLATE_LANGUAGE", "en_US"),
			RateLimit:     rateLimit,
		},
		Email: EmailConfig{
			SMTPHost: setDefaultEnv("SMTP_HOST", "smtp.hostinger.com"),
			SMTPPort: smtpPort,
			Sender:   requireEnv("EMAIL_SENDER"),
			Password: requireEnv("EMAIL_PASSWORD"),
			To:       splitList(requireEnv("EMAIL_RECEIVER")),
			CC:       splitList(os.Getenv("EMAIL_CC")),
		},
	}

	if cfg.Messaging.Provider == "whatsapp" {
		requireEnv("WHATSAPP_ACCESS_TOKEN")
		requireEnv("WHATSAPP_PHONE_NUMBER_ID")
		requireEnv("WHATSAPP_BUSINESS_ID")
	}

	return cfg
}

// parseBranches decodes a registry override of the form
// "Name=lat,lon;Name=lat,lon". Order is preserved.
func parseBranches(raw string) ([]models.Branch, error) {
	var branches []models.Branch
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		name, coords, found := strings.Cut(entry, "=")
		if !found {
			return nil, fmt.Errorf("branch entry %q is missing '='", entry)
		}

		latRaw, lonRaw, found := strings.Cut(coords, ",")
		if !found {
			return nil, fmt.Errorf("branch entry %q is missing coordinates", entry)
		}

		lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("branch entry %q has invalid latitude: %w", entry, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonRaw), 64)
		if err != nil {
			return nil, fmt.Errorf("branch entry %q has invalid longitude: %w", entry, err)
		}

		location := models.Coordinates{Latitude: lat, Longitude: lon}
		if err = location.Validate(); err != nil {
			return nil, fmt.Errorf("branch entry %q: %w", entry, err)
		}

		branches = append(branches, models.Branch{Name: strings.TrimSpace(name), Location: location})
	}

	return branches, nil
}

func mustParseFloat(key, override string) float64 {
	value, err := strconv.ParseFloat(setDefaultEnv(key, override), 64)
	if err != nil {
		panic("failed to parse " + key + " from configuration, must be a number")
	}
	return value
}

func requireEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic("environment variable " + key + " is required")
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
