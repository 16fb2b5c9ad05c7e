package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrGatewayBaseURLRequired is returned when the gateway base URL is missing.
	ErrGatewayBaseURLRequired = errors.New("sms gateway base url is required")
	// ErrNoRecipient is returned when the destination number is empty.
	ErrNoRecipient = errors.New("no destination number provided")
	// ErrContentTooLong is returned when the body exceeds MaxContentLength.
	ErrContentTooLong = errors.New("message body exceeds gateway length limit")
	// ErrRejected is returned when the gateway refuses the message (bad number, blocked).
	ErrRejected = errors.New("message rejected by gateway")
	// ErrUnavailable is returned on gateway-side failures that may succeed on retry.
	ErrUnavailable = errors.New("sms gateway unavailable")
)

// HTTPGateway is a Sender backed by an HTTP JSON gateway.
type HTTPGateway struct {
	baseURL string
	apiKey  string
	sender  string
	client  *http.Client
}

// HTTPGatewayConfig configures the HTTP gateway implementation.
type HTTPGatewayConfig struct {
	// BaseURL is the gateway endpoint, e.g. https://gateway.example.com.
	BaseURL string
	// APIKey authenticates against the gateway.
	APIKey string
	// Sender is the default originating number or sender ID.
	Sender string
	// Timeout bounds a single gateway call.
	Timeout time.Duration
}

// NewHTTPGateway constructs an HTTP gateway sender.
func NewHTTPGateway(cfg HTTPGatewayConfig) (*HTTPGateway, error) {
	if cfg.BaseURL == "" {
		return nil, ErrGatewayBaseURLRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &HTTPGateway{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		sender:  cfg.Sender,
		client:  &http.Client{Timeout: timeout},
	}, nil
}

type gatewayRequest struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Body    string `json:"body"`
	Channel string `json:"channel"`
}

// Send delivers a message through the gateway.
func (g *HTTPGateway) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	if len(msg.Body) > MaxContentLength {
		return ErrContentTooLong
	}

	channel := "sms"
	if msg.WhatsApp {
		channel = "whatsapp"
	}

	payload, err := json.Marshal(gatewayRequest{
		To:      msg.To,
		From:    g.sender,
		Body:    msg.Body,
		Channel: channel,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}
}

// Close implements io.Closer for interface compatibility.
func (g *HTTPGateway) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
