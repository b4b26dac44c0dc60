package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foodsspot/beeline/internal/config"
	"github.com/foodsspot/beeline/internal/mailer"
	"github.com/foodsspot/beeline/internal/messaging"
	"github.com/foodsspot/beeline/internal/metrics"
	"github.com/foodsspot/beeline/internal/quote"
	"github.com/foodsspot/beeline/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create a separate registry for metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Build the quote calculator over the configured branch registry.
	// An empty registry is a configuration error and refuses startup.
	calculator, err := quote.NewCalculator(cfg.Branches, quote.Params{
		CostPerKm:          cfg.Delivery.CostPerKm,
		AverageSpeedKmph:   cfg.Delivery.AverageSpeedKmph,
		MinCookingTimeMins: cfg.Delivery.MinCookingTimeMins,
		MinDeliveryCharge:  cfg.Delivery.MinDeliveryCharge,
	})
	if err != nil {
		log.Fatalf("Failed to build quote calculator: %v", err)
	}

	// Create the messaging provider using the factory pattern based on configuration.
	// This allows runtime selection between providers (WhatsApp for production, noop for local).
	messenger, err := messaging.NewProvider(messaging.ProviderConfig{
		Type:            messaging.ProviderType(cfg.Messaging.Provider),
		AccessToken:     cfg.Messaging.AccessToken,
		PhoneNumberID:   cfg.Messaging.PhoneNumberID,
		DefaultTemplate: cfg.Messaging.Template,
		DefaultLanguage: cfg.Messaging.Language,
		RateLimit:       cfg.Messaging.RateLimit,
		Logger:          logger,
	})
	if err != nil {
		log.Fatalf("Failed to create messaging provider: %v", err)
	}

	logger.InfoContext(ctx, "Messaging provider initialized", "type", cfg.Messaging.Provider)

	// Create the SMTP mailer for order-confirmation emails.
	orderMailer, err := mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.Email.SMTPHost,
		Port:     cfg.Email.SMTPPort,
		Sender:   cfg.Email.Sender,
		Password: cfg.Email.Password,
		To:       cfg.Email.To,
		CC:       cfg.Email.CC,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create mailer: %v", err)
	}

	srv := server.New(logger, calculator, messenger, orderMailer, appMetrics)

	readTimeout := 5
	writeTimeout := 10
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(reg),
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	// Start the API server in a goroutine to allow main to listen for signals.
	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.Port, "branches", len(cfg.Branches))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", serveErr)
			stop()
		}
	}()

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownTimeout := 10
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownTimeout)*time.Second)
	defer cancel()

	if err = httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down API server gracefully", "error", err)
	}

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var logger *slog.Logger

	switch env {
	case envLocal:
		logger = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		logger = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		logger.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return logger
}
