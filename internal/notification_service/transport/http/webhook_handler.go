package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
)

// OrderEventProcessor is the application boundary the webhook handler talks
// to; an interface so handler tests can mock the orchestration.
type OrderEventProcessor interface {
	HandleOrderCreated(ctx context.Context, rawPayload []byte) error
	HandleOrderFulfilled(ctx context.Context, rawPayload []byte) error
}

type WebhookHandler struct {
	appService OrderEventProcessor
	logger     *slog.Logger
}

func NewWebhookHandler(appService OrderEventProcessor, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		appService: appService,
		logger:     logger.With("component", "webhook_handler"),
	}
}

// HandleOrderCreated receives Shopify orders/create webhooks.
func (h *WebhookHandler) HandleOrderCreated(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "orders/create", h.appService.HandleOrderCreated)
}

// HandleOrderFulfilled receives Shopify orders/fulfilled webhooks.
func (h *WebhookHandler) HandleOrderFulfilled(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "orders/fulfilled", h.appService.HandleOrderFulfilled)
}

func (h *WebhookHandler) handle(w http.ResponseWriter, r *http.Request, topic string, process func(context.Context, []byte) error) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx), "topic", topic)

	rawPayload, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read webhook request body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	logger.InfoContext(ctx, "Received order webhook",
		"remote_addr", r.RemoteAddr, "payload_size", len(rawPayload))

	if err := process(ctx, rawPayload); err != nil {
		if app.IsClientPayloadError(err) {
			logger.WarnContext(ctx, "Order webhook rejected", "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.ErrorContext(ctx, "Error processing order webhook", "error", err)
		http.Error(w, "Internal server error processing webhook", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.WarnContext(ctx, "Failed to write webhook success response", "error", err)
	}
	logger.InfoContext(ctx, "Order webhook processed successfully")
}
