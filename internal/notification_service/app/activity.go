package app

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"
)

// KeepAlivePingHeader flags a self-originated keep-alive probe so the
// activity middleware does not count it as real traffic.
const KeepAlivePingHeader = "X-Keepalive-Ping"

const keepAlivePingTimeout = 10 * time.Second

// ActivityTracker holds the process-wide last-activity instant. Updates are
// benign last-writer-wins; the value is a liveness approximation, not a
// correctness-critical timestamp, so a single atomic cell is enough.
type ActivityTracker struct {
	lastUnixNano atomic.Int64
}

func NewActivityTracker() *ActivityTracker {
	t := &ActivityTracker{}
	t.Touch()
	return t
}

// Touch records activity now.
func (t *ActivityTracker) Touch() {
	t.lastUnixNano.Store(time.Now().UnixNano())
}

// Last returns the most recent recorded activity instant.
func (t *ActivityTracker) Last() time.Time {
	return time.Unix(0, t.lastUnixNano.Load())
}

// IdleFor returns the elapsed time since the last recorded activity.
func (t *ActivityTracker) IdleFor() time.Duration {
	return time.Since(t.Last())
}

// KeepAliveWorker periodically self-pings the service's public URL when the
// process has been idle past the inactivity threshold, so free-tier hosts do
// not suspend it.
type KeepAliveWorker struct {
	tracker    *ActivityTracker
	targetURL  string
	interval   time.Duration
	threshold  time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewKeepAliveWorker(tracker *ActivityTracker, targetURL string, interval, threshold time.Duration, logger *slog.Logger) *KeepAliveWorker {
	return &KeepAliveWorker{
		tracker:    tracker,
		targetURL:  targetURL,
		interval:   interval,
		threshold:  threshold,
		httpClient: &http.Client{Timeout: keepAlivePingTimeout},
		logger:     logger.With("component", "keepalive_worker"),
	}
}

// Run ticks at the configured interval until ctx is cancelled. Each cycle
// pings at most once; ping failures are logged and the next cycle proceeds
// unaffected.
func (w *KeepAliveWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Keep-alive worker started",
		"target_url", w.targetURL, "interval", w.interval.String(), "threshold", w.threshold.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Keep-alive worker stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

// cycle pings the target once if the tracker shows inactivity past the
// threshold. Returns whether a ping was attempted.
func (w *KeepAliveWorker) cycle(ctx context.Context) bool {
	idle := w.tracker.IdleFor()
	if idle < w.threshold {
		w.logger.Debug("Activity recent enough, skipping keep-alive ping", "idle", idle.String())
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, keepAlivePingTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(pingCtx, http.MethodGet, w.targetURL+"/health", nil)
	if err != nil {
		w.logger.Warn("Failed to build keep-alive request", "error", err)
		keepAlivePingsCounter.WithLabelValues("failed").Inc()
		return true
	}
	req.Header.Set(KeepAlivePingHeader, "true")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.logger.Warn("Keep-alive ping failed", "error", err, "target_url", w.targetURL)
		keepAlivePingsCounter.WithLabelValues("failed").Inc()
		return true
	}
	defer resp.Body.Close()

	w.logger.Info("Keep-alive ping sent", "status_code", resp.StatusCode, "idle", idle.String())
	keepAlivePingsCounter.WithLabelValues("ok").Inc()
	return true
}
