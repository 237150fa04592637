package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"
)

// ShopifyHMACHeader carries the base64 HMAC-SHA256 digest Shopify computes
// over the raw request body with the shared webhook secret.
const ShopifyHMACHeader = "X-Shopify-Hmac-Sha256"

const maxWebhookBodySize = 1 << 20 // 1 MB

// VerifyShopifySignature authenticates webhook deliveries before any payload
// parsing. The body is read once here and re-attached for downstream
// handlers; a digest mismatch ends the request with 401.
func VerifyShopifySignature(secret string, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("middleware", "shopify_signature")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBodySize)
			rawBody, err := io.ReadAll(r.Body)
			if err != nil {
				logger.ErrorContext(ctx, "Failed to read webhook request body", "error", err)
				if err.Error() == "http: request body too large" {
					http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
				} else {
					http.Error(w, "Error reading request body", http.StatusBadRequest)
				}
				return
			}

			mac := hmac.New(sha256.New, []byte(secret))
			mac.Write(rawBody)
			expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

			received := r.Header.Get(ShopifyHMACHeader)
			if !hmac.Equal([]byte(expected), []byte(received)) {
				logger.WarnContext(ctx, "Webhook signature verification failed",
					"remote_addr", r.RemoteAddr, "signature_present", received != "")
				http.Error(w, "Webhook signature verification failed", http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(rawBody))
			next.ServeHTTP(w, r)
		})
	}
}
