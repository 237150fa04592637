package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/platform/config"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
)

// HealthHandler serves the liveness and activity diagnostics. The admin
// roster is resolved fresh on every call so the response always reflects the
// in-memory configuration.
type HealthHandler struct {
	cfg     *config.Config
	tracker *app.ActivityTracker
	logger  *slog.Logger
}

func NewHealthHandler(cfg *config.Config, tracker *app.ActivityTracker, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		cfg:     cfg,
		tracker: tracker,
		logger:  logger.With("component", "health_handler"),
	}
}

// HandleHealth serves GET /health.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	last := h.tracker.Last()

	resp := HealthResponse{
		Status:                   "ok",
		Timestamp:                now,
		LastActivity:             last,
		SecondsSinceLastActivity: now.Sub(last).Seconds(),
		IsKeepAlivePing:          r.Header.Get(app.KeepAlivePingHeader) == "true",
		Admins:                   app.AdminRoster(h.cfg),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write health response", "error", err)
	}
}

// HandleActivityStatus serves GET /activity-status.
func (h *HealthHandler) HandleActivityStatus(w http.ResponseWriter, r *http.Request) {
	idle := h.tracker.IdleFor()

	resp := ActivityStatusResponse{
		LastActivity:               h.tracker.Last(),
		SecondsSinceLastActivity:   idle.Seconds(),
		InactivityThresholdSeconds: config.InactivityThreshold.Seconds(),
		Inactive:                   idle >= config.InactivityThreshold,
		KeepAliveEnabled:           h.cfg.KeepAliveEnabled,
		Admins:                     app.AdminRoster(h.cfg),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write activity status response", "error", err)
	}
}
