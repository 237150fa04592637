package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/provider"
	httptransport "github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/transport/http"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/platform/config"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel)
	appLogger.Info("Order notification service starting...", "port", cfg.ServerPort, "log_level", cfg.LogLevel)

	if cfg.ShopifyWebhookSecret == "" {
		appLogger.Warn("Shopify webhook secret is not configured; every webhook delivery will fail signature verification")
	}
	if len(app.AdminRoster(cfg)) == 0 {
		appLogger.Warn("No admin recipients configured; admin notifications will be skipped")
	}

	tracker := app.NewActivityTracker()
	sender := provider.NewWhatsAppProvider(appLogger, cfg.WhatsAppAPIBaseURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken, nil)
	dispatcher := app.NewDispatcher(sender, tracker, appLogger)
	orderService := app.NewOrderEventService(cfg, dispatcher, appLogger)
	validate := validator.New()

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Cfg:          cfg,
		Logger:       appLogger,
		Tracker:      tracker,
		OrderService: orderService,
		Validate:     validate,
	})

	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	if cfg.KeepAliveEnabled && cfg.KeepAliveURL != "" {
		worker := app.NewKeepAliveWorker(tracker, cfg.KeepAliveURL,
			config.KeepAlivePingInterval, config.InactivityThreshold, appLogger)
		go worker.Run(appCtx)
	} else {
		appLogger.Info("Keep-alive worker disabled", "enabled", cfg.KeepAliveEnabled, "url_configured", cfg.KeepAliveURL != "")
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		appLogger.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quitChan := make(chan os.Signal, 1)
	signal.Notify(quitChan, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quitChan
	appLogger.Info("Shutdown signal received", "signal", receivedSignal.String())

	// Stop the keep-alive timer before tearing the server down.
	cancelAppCtx()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP server shutdown error", "error", err)
	}
	appLogger.Info("Order notification service shut down successfully.")
}
