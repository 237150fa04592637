package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActivityTracker_TouchAdvancesLast(t *testing.T) {
	tracker := NewActivityTracker()
	first := tracker.Last()

	time.Sleep(5 * time.Millisecond)
	tracker.Touch()

	assert.True(t, tracker.Last().After(first))
	assert.Less(t, tracker.IdleFor(), time.Second)
}

func TestKeepAliveWorker_PingsWhenIdle(t *testing.T) {
	var pings atomic.Int32
	var gotHeader atomic.Value

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pings.Add(1)
		gotHeader.Store(r.Header.Get(KeepAlivePingHeader))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tracker := NewActivityTracker()
	// Force the tracker into the past, past any threshold.
	tracker.lastUnixNano.Store(time.Now().Add(-6 * time.Minute).UnixNano())

	w := NewKeepAliveWorker(tracker, server.URL, time.Minute, 5*time.Minute, testLogger())

	pinged := w.cycle(context.Background())

	assert.True(t, pinged)
	assert.Equal(t, int32(1), pings.Load())
	assert.Equal(t, "true", gotHeader.Load())
}

func TestKeepAliveWorker_SkipsAfterRecentActivity(t *testing.T) {
	var pings atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pings.Add(1)
	}))
	defer server.Close()

	tracker := NewActivityTracker()
	tracker.Touch() // fresh activity

	w := NewKeepAliveWorker(tracker, server.URL, time.Minute, 5*time.Minute, testLogger())

	pinged := w.cycle(context.Background())

	assert.False(t, pinged)
	assert.Equal(t, int32(0), pings.Load())
}

func TestKeepAliveWorker_PingFailureIsIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // unreachable target

	tracker := NewActivityTracker()
	tracker.lastUnixNano.Store(time.Now().Add(-6 * time.Minute).UnixNano())

	w := NewKeepAliveWorker(tracker, server.URL, time.Minute, 5*time.Minute, testLogger())

	// Must not panic or return abnormally; the failure is logged and dropped.
	assert.True(t, w.cycle(context.Background()))
}

func TestKeepAliveWorker_RunStopsOnCancel(t *testing.T) {
	tracker := NewActivityTracker()
	w := NewKeepAliveWorker(tracker, "http://127.0.0.1:0", 10*time.Millisecond, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("keep-alive worker did not stop after context cancellation")
	}
}
