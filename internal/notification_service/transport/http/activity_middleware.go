package http

import (
	"net/http"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/app"
)

// ActivityMiddleware marks the process active on every inbound request that
// is not itself a keep-alive probe, so self-pings never mask real idleness.
func ActivityMiddleware(tracker *app.ActivityTracker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(app.KeepAlivePingHeader) != "true" {
				tracker.Touch()
			}
			next.ServeHTTP(w, r)
		})
	}
}
