package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
)

// DiagHandler serves the unauthenticated diagnostic endpoints used while
// wiring up Shopify and the message templates.
type DiagHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
}

func NewDiagHandler(logger *slog.Logger, validate *validator.Validate) *DiagHandler {
	return &DiagHandler{
		logger:   logger.With("component", "diag_handler"),
		validate: validate,
	}
}

// HandleTestEcho serves POST /test: echoes the body back, and when the body
// looks like an order with a customer it also previews the composed admin
// message.
func (h *DiagHandler) HandleTestEcho(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read test request body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	var received interface{}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &received); err != nil {
			http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	resp := TestEchoResponse{Status: "ok", Received: received}

	var order domain.Order
	if err := json.Unmarshal(body, &order); err == nil && order.Customer != nil {
		resp.AdminMessage = app.AdminNewOrderText(&order)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleTestTracking serves POST /test-tracking: runs the tracking extractor
// over the supplied order and returns the result.
func (h *DiagHandler) HandleTestTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.logger.With("request_id", chi_middleware.GetReqID(ctx))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read test-tracking request body", "error", err)
		http.Error(w, "Error reading request body", http.StatusBadRequest)
		return
	}

	var req TestTrackingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.StructCtx(ctx, req); err != nil {
		logger.WarnContext(ctx, "Test-tracking request failed validation", "error", err)
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	tracking := domain.ExtractTracking(req.Order)
	logger.InfoContext(ctx, "Extracted tracking for diagnostic request",
		"tracking_number", tracking.Number, "carrier", tracking.Carrier)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tracking)
}
