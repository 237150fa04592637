package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/provider"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSender records every send and fails the recipients listed in failFor.
type fakeSender struct {
	mu       sync.Mutex
	requests []provider.SendRequest
	failFor  map[string]bool
}

func (f *fakeSender) Send(_ context.Context, req provider.SendRequest) (*provider.SendResult, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.failFor[req.Recipient] {
		return &provider.SendResult{IsSuccess: false, ErrorMessage: "simulated failure"},
			errors.New("simulated failure")
	}
	return &provider.SendResult{IsSuccess: true, ProviderMessageID: "wamid.TEST"}, nil
}

func (f *fakeSender) GetName() string { return "fake" }

func (f *fakeSender) sentTo() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipients := make([]string, 0, len(f.requests))
	for _, r := range f.requests {
		recipients = append(recipients, r.Recipient)
	}
	return recipients
}

func TestDispatcher_SendTemplate_Success(t *testing.T) {
	sender := &fakeSender{}
	tracker := NewActivityTracker()
	d := NewDispatcher(sender, tracker, testLogger())

	before := tracker.Last()
	result := d.SendTemplate(context.Background(), "919876543210", TemplateOrderConfirmation, []string{"Priya"})

	assert.True(t, result.Delivered)
	assert.NotEmpty(t, result.DispatchID)
	assert.Empty(t, result.Error)
	require.Len(t, sender.requests, 1)
	assert.Equal(t, provider.KindTemplate, sender.requests[0].Kind)
	assert.False(t, tracker.Last().Before(before))
}

func TestDispatcher_SendText_FailureIsAbsorbed(t *testing.T) {
	sender := &fakeSender{failFor: map[string]bool{"919876543210": true}}
	d := NewDispatcher(sender, NewActivityTracker(), testLogger())

	result := d.SendText(context.Background(), "919876543210", "hello")

	assert.False(t, result.Delivered)
	assert.Contains(t, result.Error, "simulated failure")
}

func TestDispatcher_Broadcast_FailureIsolation(t *testing.T) {
	admins := []domain.AdminRecipient{
		{Phone: "911111111111", Name: "A1"},
		{Phone: "912222222222", Name: "A2"},
		{Phone: "913333333333", Name: "A3"},
	}
	sender := &fakeSender{failFor: map[string]bool{"912222222222": true}}
	d := NewDispatcher(sender, NewActivityTracker(), testLogger())

	results := d.Broadcast(context.Background(), admins, TemplateAdminNewOrder, []string{"#1042"})

	require.Len(t, results, 3)
	assert.True(t, results[0].Delivered)
	assert.False(t, results[1].Delivered)
	assert.True(t, results[2].Delivered)
	assert.ElementsMatch(t, []string{"911111111111", "912222222222", "913333333333"}, sender.sentTo())
}

func TestDispatcher_Broadcast_PrependsRecipientName(t *testing.T) {
	admins := []domain.AdminRecipient{{Phone: "911111111111", Name: "Priya"}}
	sender := &fakeSender{}
	d := NewDispatcher(sender, NewActivityTracker(), testLogger())

	d.Broadcast(context.Background(), admins, TemplateAdminNewOrder, []string{"#1042", "total"})

	require.Len(t, sender.requests, 1)
	assert.Equal(t, []string{"Priya", "#1042", "total"}, sender.requests[0].Parameters)
}

func TestDispatcher_Broadcast_EmptyRosterIsNoop(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, NewActivityTracker(), testLogger())

	results := d.Broadcast(context.Background(), nil, TemplateAdminNewOrder, []string{"#1042"})

	assert.Nil(t, results)
	assert.Empty(t, sender.requests)
}
