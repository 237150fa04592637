package app

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/provider"
)

// DispatchResult is the per-recipient outcome of one send attempt. Delivery
// failures are captured here, never propagated as errors: a webhook response
// must not depend on the messaging API being up.
type DispatchResult struct {
	DispatchID string
	Recipient  string
	Delivered  bool
	Error      string
}

// Dispatcher sends single notifications and admin fanouts through the
// messaging provider. Every attempt marks the activity tracker first, so
// outbound traffic counts as process activity.
type Dispatcher struct {
	sender   provider.Sender
	activity *ActivityTracker
	logger   *slog.Logger
}

func NewDispatcher(sender provider.Sender, activity *ActivityTracker, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:   sender,
		activity: activity,
		logger:   logger.With("component", "dispatcher"),
	}
}

// SendTemplate delivers one templated message to one recipient.
func (d *Dispatcher) SendTemplate(ctx context.Context, recipient, templateName string, params []string) DispatchResult {
	return d.send(ctx, provider.SendRequest{
		Recipient:    recipient,
		Kind:         provider.KindTemplate,
		TemplateName: templateName,
		Parameters:   params,
	})
}

// SendText delivers one free-text message to one recipient.
func (d *Dispatcher) SendText(ctx context.Context, recipient, body string) DispatchResult {
	return d.send(ctx, provider.SendRequest{
		Recipient: recipient,
		Kind:      provider.KindText,
		Body:      body,
	})
}

func (d *Dispatcher) send(ctx context.Context, req provider.SendRequest) DispatchResult {
	req.InternalID = uuid.NewString()
	d.activity.Touch()

	result := DispatchResult{DispatchID: req.InternalID, Recipient: req.Recipient}

	sendResult, err := d.sender.Send(ctx, req)
	if err != nil || sendResult == nil || !sendResult.IsSuccess {
		errMsg := "delivery failed"
		if err != nil {
			errMsg = err.Error()
		} else if sendResult != nil && sendResult.ErrorMessage != "" {
			errMsg = sendResult.ErrorMessage
		}
		d.logger.WarnContext(ctx, "Notification delivery failed",
			"recipient", req.Recipient, "kind", req.Kind, "template", req.TemplateName,
			"dispatch_id", req.InternalID, "error", errMsg)
		notificationsDispatchedCounter.WithLabelValues(string(req.Kind), req.TemplateName, "failed").Inc()
		result.Error = errMsg
		return result
	}

	d.logger.InfoContext(ctx, "Notification delivered",
		"recipient", req.Recipient, "kind", req.Kind, "template", req.TemplateName,
		"dispatch_id", req.InternalID, "provider_message_id", sendResult.ProviderMessageID)
	notificationsDispatchedCounter.WithLabelValues(string(req.Kind), req.TemplateName, "delivered").Inc()
	result.Delivered = true
	return result
}

// Broadcast sends a templated message to every admin concurrently. Each
// recipient gets [recipient.Name, baseParams...] as its parameter list. All
// attempts are joined before returning; one recipient failing never blocks
// or cancels the others. An empty roster is a no-op.
func (d *Dispatcher) Broadcast(ctx context.Context, admins []domain.AdminRecipient, templateName string, baseParams []string) []DispatchResult {
	if len(admins) == 0 {
		d.logger.WarnContext(ctx, "Admin broadcast requested with empty roster, nothing to send",
			"template", templateName)
		return nil
	}

	adminBroadcastsCounter.WithLabelValues(templateName).Inc()

	results := make([]DispatchResult, len(admins))
	var wg sync.WaitGroup
	for i, admin := range admins {
		wg.Add(1)
		go func(i int, admin domain.AdminRecipient) {
			defer wg.Done()
			params := append([]string{admin.Name}, baseParams...)
			results[i] = d.SendTemplate(ctx, admin.Phone, templateName, params)
		}(i, admin)
	}
	wg.Wait()

	delivered := 0
	for _, r := range results {
		if r.Delivered {
			delivered++
		}
	}
	d.logger.InfoContext(ctx, "Admin broadcast completed",
		"template", templateName, "recipients", len(admins), "delivered", delivered)
	return results
}
