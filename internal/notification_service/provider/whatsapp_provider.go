package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const templateLanguageCode = "en"

// WhatsAppProvider sends messages through the WhatsApp Cloud (Graph) API.
type WhatsAppProvider struct {
	logger        *slog.Logger
	httpClient    *http.Client
	baseURL       string
	phoneNumberID string
	accessToken   string
}

func NewWhatsAppProvider(logger *slog.Logger, baseURL, phoneNumberID, accessToken string, httpClient *http.Client) *WhatsAppProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WhatsAppProvider{
		logger:        logger.With("provider", "whatsapp"),
		httpClient:    httpClient,
		baseURL:       baseURL,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
	}
}

// Wire types for the Graph API /messages endpoint.
type waMessageRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Template         *waTemplate `json:"template,omitempty"`
	Text             *waText     `json:"text,omitempty"`
}

type waTemplate struct {
	Name       string        `json:"name"`
	Language   waLanguage    `json:"language"`
	Components []waComponent `json:"components,omitempty"`
}

type waLanguage struct {
	Code string `json:"code"`
}

type waComponent struct {
	Type       string        `json:"type"`
	Parameters []waParameter `json:"parameters"`
}

type waParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type waText struct {
	Body string `json:"body"`
}

type waSendSuccessResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type waErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func (p *WhatsAppProvider) buildRequestBody(req SendRequest) waMessageRequest {
	body := waMessageRequest{
		MessagingProduct: "whatsapp",
		To:               req.Recipient,
		Type:             string(req.Kind),
	}

	switch req.Kind {
	case KindText:
		body.Text = &waText{Body: req.Body}
	default:
		params := make([]waParameter, 0, len(req.Parameters))
		for _, text := range req.Parameters {
			params = append(params, waParameter{Type: "text", Text: text})
		}
		tmpl := &waTemplate{
			Name:     req.TemplateName,
			Language: waLanguage{Code: templateLanguageCode},
		}
		if len(params) > 0 {
			tmpl.Components = []waComponent{{Type: "body", Parameters: params}}
		}
		body.Template = tmpl
	}
	return body
}

// Send issues exactly one POST to the Graph API messages endpoint. Transport
// errors and non-2xx responses come back as a failed SendResult plus an
// error; the caller decides whether that is fatal.
func (p *WhatsAppProvider) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	p.logger.InfoContext(ctx, "WhatsAppProvider: Send called",
		"recipient", req.Recipient, "kind", req.Kind, "template", req.TemplateName, "dispatch_id", req.InternalID)

	reqBytes, err := json.Marshal(p.buildRequestBody(req))
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to marshal WhatsApp request", "error", err, "dispatch_id", req.InternalID)
		return nil, fmt.Errorf("failed to marshal request for WhatsApp API: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", p.baseURL, p.phoneNumberID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBytes))
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to create WhatsApp HTTP request", "error", err, "dispatch_id", req.InternalID)
		return nil, fmt.Errorf("failed to create HTTP request for WhatsApp API: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.accessToken)

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to send request to WhatsApp API", "error", err, "dispatch_id", req.InternalID)
		return &SendResult{
			IsSuccess:      false,
			ProviderStatus: "FAILED_WHATSAPP_TRANSPORT",
			ErrorMessage:   err.Error(),
		}, fmt.Errorf("failed to send request to WhatsApp API: %w", err)
	}
	defer httpResp.Body.Close()

	respBodyBytes, readErr := io.ReadAll(httpResp.Body)
	if readErr != nil {
		p.logger.ErrorContext(ctx, "Failed to read WhatsApp response body",
			"status_code", httpResp.StatusCode, "error", readErr, "dispatch_id", req.InternalID)
		return &SendResult{
			IsSuccess:      false,
			ProviderStatus: fmt.Sprintf("FAILED_WHATSAPP_READ_ERR_%d", httpResp.StatusCode),
			ErrorMessage:   readErr.Error(),
		}, fmt.Errorf("whatsapp API response read failed (status %d): %w", httpResp.StatusCode, readErr)
	}

	if httpResp.StatusCode >= 200 && httpResp.StatusCode < 300 {
		var successResp waSendSuccessResponse
		providerMsgID := ""
		if err := json.Unmarshal(respBodyBytes, &successResp); err != nil {
			p.logger.WarnContext(ctx, "WhatsApp send accepted but response body not parseable",
				"status_code", httpResp.StatusCode, "error", err, "dispatch_id", req.InternalID)
		} else if len(successResp.Messages) > 0 {
			providerMsgID = successResp.Messages[0].ID
		}

		p.logger.InfoContext(ctx, "Successfully sent message via WhatsApp API",
			"status_code", httpResp.StatusCode, "provider_message_id", providerMsgID, "dispatch_id", req.InternalID)
		return &SendResult{
			ProviderMessageID: providerMsgID,
			IsSuccess:         true,
			ProviderStatus:    fmt.Sprintf("SENT_WHATSAPP_%d", httpResp.StatusCode),
		}, nil
	}

	var errResp waErrorResponse
	errMsg := fmt.Sprintf("WhatsApp API error: status %d", httpResp.StatusCode)
	if err := json.Unmarshal(respBodyBytes, &errResp); err == nil && errResp.Error.Message != "" {
		errMsg = fmt.Sprintf("WhatsApp API error: status %d, code %d, message: %s",
			httpResp.StatusCode, errResp.Error.Code, errResp.Error.Message)
	} else if len(respBodyBytes) > 0 && len(respBodyBytes) < 200 {
		errMsg = fmt.Sprintf("WhatsApp API error: status %d, raw_body: %s", httpResp.StatusCode, string(respBodyBytes))
	}

	p.logger.WarnContext(ctx, "WhatsApp send failed",
		"status_code", httpResp.StatusCode, "error_message", errMsg, "recipient", req.Recipient, "dispatch_id", req.InternalID)
	return &SendResult{
		IsSuccess:      false,
		ProviderStatus: fmt.Sprintf("FAILED_WHATSAPP_%d", httpResp.StatusCode),
		ErrorMessage:   errMsg,
	}, fmt.Errorf("%s", errMsg)
}

func (p *WhatsAppProvider) GetName() string {
	return "whatsapp"
}
