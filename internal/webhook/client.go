// Package webhook forwards chat questions to the automation webhook and
// returns its reply body untouched.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"bounty-chat-backend/internal/config"
	"bounty-chat-backend/internal/logger"
	"bounty-chat-backend/internal/metrics"
)

var (
	ErrTransport = errors.New("webhook request failed")
	ErrReadBody  = errors.New("webhook response could not be read")
)

// StatusError is returned when the webhook answers with a non-2xx status.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

type forwardRequest struct {
	Message string `json:"message"`
	Query   string `json:"query,omitempty"`
	Text    string `json:"text,omitempty"`
}

type Client struct {
	url         string
	timeout     time.Duration
	sendAliases bool
	http        *retryablehttp.Client
	log         logger.Logger
}

func NewClient(cfg config.Config, log logger.Logger) *Client {
	hc := retryablehttp.NewClient()
	hc.Logger = nil
	// One attempt only; non-2xx responses come back as responses.
	hc.RetryMax = 0
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		url:         cfg.WebhookURL,
		timeout:     cfg.WebhookTimeout,
		sendAliases: cfg.WebhookSendAliases,
		http:        hc,
		log:         log.With(map[string]interface{}{"component": "webhook"}),
	}
}

// Forward posts message to the webhook and returns the full reply body.
func (c *Client) Forward(ctx context.Context, message string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	in := forwardRequest{Message: message}
	if c.sendAliases {
		in.Query = message
		in.Text = message
	}
	payload, err := json.Marshal(in)
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(metrics.OutcomeTransport, start)
		c.log.Error("webhook request failed", map[string]interface{}{"error": err})
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.observe(metrics.OutcomeStatus, start)
		c.log.Warn("webhook returned error status", map[string]interface{}{"status": resp.StatusCode})
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(metrics.OutcomeReadBody, start)
		c.log.Error("failed to read webhook response", map[string]interface{}{"error": err})
		return "", fmt.Errorf("%w: %v", ErrReadBody, err)
	}
	c.observe(metrics.OutcomeOK, start)
	c.log.Debug("webhook response", map[string]interface{}{
		"status": resp.StatusCode,
		"body":   string(body),
	})
	return string(body), nil
}

func (c *Client) observe(outcome string, start time.Time) {
	metrics.WebhookDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
