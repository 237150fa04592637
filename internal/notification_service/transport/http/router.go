package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/platform/config"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
)

// RouterDeps collects everything the HTTP surface needs.
type RouterDeps struct {
	Cfg          *config.Config
	Logger       *slog.Logger
	Tracker      *app.ActivityTracker
	OrderService OrderEventProcessor
	Validate     *validator.Validate
}

// NewRouter assembles the chi router: standard middleware, activity and
// metrics tracking on everything, signature verification on the webhook
// routes only.
func NewRouter(deps RouterDeps) chi.Router {
	webhookHandler := NewWebhookHandler(deps.OrderService, deps.Logger)
	healthHandler := NewHealthHandler(deps.Cfg, deps.Tracker, deps.Logger)
	diagHandler := NewDiagHandler(deps.Logger, deps.Validate)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(PrometheusMetricsMiddleware)
	r.Use(ActivityMiddleware(deps.Tracker))

	r.Route("/webhook/orders", func(webhookRouter chi.Router) {
		webhookRouter.Use(VerifyShopifySignature(deps.Cfg.ShopifyWebhookSecret, deps.Logger))
		webhookRouter.Post("/create", webhookHandler.HandleOrderCreated)
		webhookRouter.Post("/fulfilled", webhookHandler.HandleOrderFulfilled)
	})

	r.Get("/health", healthHandler.HandleHealth)
	r.Get("/activity-status", healthHandler.HandleActivityStatus)

	r.Post("/test", diagHandler.HandleTestEcho)
	r.Post("/test-tracking", diagHandler.HandleTestTracking)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
