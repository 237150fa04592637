package http

import (
	"time"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status                   string                  `json:"status"`
	Timestamp                time.Time               `json:"timestamp"`
	LastActivity             time.Time               `json:"last_activity"`
	SecondsSinceLastActivity float64                 `json:"seconds_since_last_activity"`
	IsKeepAlivePing          bool                    `json:"is_keepalive_ping"`
	Admins                   []domain.AdminRecipient `json:"admins"`
}

// ActivityStatusResponse is the body of GET /activity-status.
type ActivityStatusResponse struct {
	LastActivity               time.Time               `json:"last_activity"`
	SecondsSinceLastActivity   float64                 `json:"seconds_since_last_activity"`
	InactivityThresholdSeconds float64                 `json:"inactivity_threshold_seconds"`
	Inactive                   bool                    `json:"inactive"`
	KeepAliveEnabled           bool                    `json:"keepalive_enabled"`
	Admins                     []domain.AdminRecipient `json:"admins"`
}

// TestTrackingRequest is the body of POST /test-tracking.
type TestTrackingRequest struct {
	Order *domain.Order `json:"order" validate:"required"`
}

// TestEchoResponse is the body of POST /test.
type TestEchoResponse struct {
	Status       string      `json:"status"`
	Received     interface{} `json:"received"`
	AdminMessage string      `json:"admin_message,omitempty"`
}
