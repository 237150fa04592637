package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/platform/config"

	"github.com/nanic-ayurveda/wp-order-confirmation/internal/notification_service/domain"
)

// ClientPayloadError marks a webhook payload the caller got wrong: the
// handler maps it to 400 and the event is never retried.
type ClientPayloadError struct {
	Reason string
}

func (e *ClientPayloadError) Error() string {
	return "invalid webhook payload: " + e.Reason
}

// OrderEventKind discriminates the two order webhook topics handled by one
// parameterized flow.
type OrderEventKind string

const (
	OrderCreated   OrderEventKind = "orders/create"
	OrderFulfilled OrderEventKind = "orders/fulfilled"
)

// AdminRoster resolves the admin recipient list from configuration. The
// roster is rebuilt on every call from the in-memory config values; when the
// multi-admin list is empty the single-admin fallback number is used.
func AdminRoster(cfg *config.Config) []domain.AdminRecipient {
	numbers := cfg.AdminPhoneNumbers
	if strings.TrimSpace(numbers) == "" {
		numbers = cfg.AdminPhoneNumber
	}
	return domain.ResolveAdmins(numbers, cfg.AdminNames, cfg.AdminContacts)
}

// OrderEventService orchestrates one webhook event: validate the payload,
// extract and normalize order data, fan out to admins, then best-effort
// notify the customer.
type OrderEventService struct {
	cfg        *config.Config
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewOrderEventService(cfg *config.Config, dispatcher *Dispatcher, logger *slog.Logger) *OrderEventService {
	return &OrderEventService{
		cfg:        cfg,
		dispatcher: dispatcher,
		logger:     logger.With("component", "order_event_service"),
	}
}

func (s *OrderEventService) HandleOrderCreated(ctx context.Context, rawPayload []byte) error {
	return s.handleOrderEvent(ctx, OrderCreated, rawPayload)
}

func (s *OrderEventService) HandleOrderFulfilled(ctx context.Context, rawPayload []byte) error {
	return s.handleOrderEvent(ctx, OrderFulfilled, rawPayload)
}

// handleOrderEvent runs the full notification flow for one event. Only
// validation problems surface as ClientPayloadError; delivery failures are
// absorbed by the dispatcher, and anything unexpected (including panics) is
// converted to a plain error so the process keeps serving.
func (s *OrderEventService) handleOrderEvent(ctx context.Context, kind OrderEventKind, rawPayload []byte) (err error) {
	logger := s.logger.With("event_kind", string(kind))

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "Recovered from panic while handling order event", "panic", r)
			err = fmt.Errorf("unexpected failure handling %s event: %v", kind, r)
		}
	}()

	order, perr := parseOrderPayload(kind, rawPayload)
	if perr != nil {
		logger.WarnContext(ctx, "Rejected order webhook payload", "error", perr)
		return perr
	}
	logger = logger.With("order_id", order.DisplayID())

	var tracking domain.TrackingInfo
	var adminParams []string
	var adminTemplate, customerTemplate string
	var customerParams []string

	switch kind {
	case OrderFulfilled:
		tracking = domain.ExtractTracking(order)
		logger.InfoContext(ctx, "Extracted tracking info",
			"tracking_number", tracking.Number, "carrier", tracking.Carrier)
		adminTemplate = TemplateAdminOrderFulfilled
		adminParams = AdminOrderFulfilledParams(order, tracking)
		customerTemplate = TemplateOrderFulfilled
		customerParams = OrderFulfilledParams(order, tracking)
	default:
		adminTemplate = TemplateAdminNewOrder
		adminParams = AdminNewOrderParams(order)
		customerTemplate = TemplateOrderConfirmation
		customerParams = OrderConfirmationParams(order)
	}

	admins := AdminRoster(s.cfg)
	s.dispatcher.Broadcast(ctx, admins, adminTemplate, adminParams)

	customerPhone, nerr := normalizeCustomerPhone(order)
	if nerr != nil {
		// Best-effort leg: a bad customer number degrades to admins-only.
		logger.WarnContext(ctx, "Skipping customer notification, phone did not normalize",
			"error", nerr, "raw_phone", ContactPhone(order))
		return nil
	}

	s.dispatcher.SendTemplate(ctx, customerPhone, customerTemplate, customerParams)
	return nil
}

// normalizeCustomerPhone runs the customer's number (falling back to the
// default-address number) through NormalizePhone.
func normalizeCustomerPhone(order *domain.Order) (string, error) {
	raw := ""
	if order.Customer != nil {
		raw = order.Customer.Phone
		if raw == "" && order.Customer.DefaultAddress != nil {
			raw = order.Customer.DefaultAddress.Phone
		}
	}
	return domain.NormalizePhone(raw)
}

// parseOrderPayload validates the webhook body shape before decoding it.
// The customer gate runs on the raw JSON so "present but not an object" can
// be told apart from a decode failure.
func parseOrderPayload(kind OrderEventKind, rawPayload []byte) (*domain.Order, error) {
	var envelope struct {
		Customer json.RawMessage `json:"customer"`
	}
	if err := json.Unmarshal(rawPayload, &envelope); err != nil {
		return nil, &ClientPayloadError{Reason: "body is not a well-formed order object"}
	}

	customerRaw := bytes.TrimSpace(envelope.Customer)
	if len(customerRaw) == 0 || bytes.Equal(customerRaw, []byte("null")) {
		return nil, &ClientPayloadError{Reason: "missing customer"}
	}
	if kind == OrderFulfilled && customerRaw[0] != '{' {
		return nil, &ClientPayloadError{Reason: "customer is not an object"}
	}

	var order domain.Order
	if err := json.Unmarshal(rawPayload, &order); err != nil {
		return nil, &ClientPayloadError{Reason: "order fields failed to decode: " + err.Error()}
	}
	return &order, nil
}

// IsClientPayloadError reports whether err is a validation rejection.
func IsClientPayloadError(err error) bool {
	var cpe *ClientPayloadError
	return errors.As(err, &cpe)
}
