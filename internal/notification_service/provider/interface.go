package provider

import "context"

// MessageKind selects the WhatsApp payload shape for a send.
type MessageKind string

const (
	KindTemplate MessageKind = "template"
	KindText     MessageKind = "text"
)

// SendRequest holds everything needed to deliver one message to one
// recipient. For KindTemplate, TemplateName and Parameters are used; for
// KindText, Body is used.
type SendRequest struct {
	InternalID   string // dispatch correlation id, for logs only
	Recipient    string // canonical dialing-prefixed number
	Kind         MessageKind
	TemplateName string
	Parameters   []string
	Body         string
}

// SendResult is the outcome of a single send attempt as reported by the
// provider. IsSuccess reflects provider acceptance, not end delivery.
type SendResult struct {
	ProviderMessageID string
	IsSuccess         bool
	ProviderStatus    string
	ErrorMessage      string
}

// Sender is the outbound messaging API boundary.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	GetName() string
}
