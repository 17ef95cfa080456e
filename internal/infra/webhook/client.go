// File: internal/infra/webhook/client.go

// Package webhook posts the funnel's two submissions to the automation
// backend that owns the payment-processor session.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/config"
	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/infra/metrics"
)

// Compile-time check
var _ adapter.CheckoutWebhook = (*Client)(nil)

type Client struct {
	leadURL string
	regURL  string
	http    *http.Client
	log     *zerolog.Logger
}

func NewClient(cfg *config.WebhookConfig, logger *zerolog.Logger) *Client {
	return &Client{
		leadURL: cfg.LeadURL,
		regURL:  cfg.RegistrationURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     logger,
	}
}

func (c *Client) SubmitLead(ctx context.Context, payload model.LeadCheckoutPayload) (model.WebhookResponse, error) {
	return c.post(ctx, "lead", c.leadURL, payload, payload.IdempotencyKey)
}

func (c *Client) SubmitRegistration(ctx context.Context, payload model.RegistrationPayload) (model.WebhookResponse, error) {
	return c.post(ctx, "registration", c.regURL, payload, payload.IdempotencyKey)
}

func (c *Client) post(ctx context.Context, kind, url string, payload any, idemKey string) (model.WebhookResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return model.WebhookResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return model.WebhookResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.ObserveCheckoutSubmit(kind, time.Since(start).Seconds())
	if err != nil {
		metrics.IncCheckoutSubmit(kind, "error")
		return model.WebhookResponse{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.IncCheckoutSubmit(kind, "error")
		return model.WebhookResponse{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncCheckoutSubmit(kind, "rejected")
		c.log.Warn().Int("status", resp.StatusCode).Str("kind", kind).Bytes("body", truncate(raw, 512)).Msg("webhook rejected submission")
		return model.WebhookResponse{}, fmt.Errorf("%w: status %d", domain.ErrUpstreamRejected, resp.StatusCode)
	}

	// An empty 2xx body is an implicit success with nothing to redirect to.
	if len(bytes.TrimSpace(raw)) == 0 {
		metrics.IncCheckoutSubmit(kind, "ok")
		return model.WebhookResponse{Success: true}, nil
	}

	var parsed model.WebhookResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		metrics.IncCheckoutSubmit(kind, "error")
		return model.WebhookResponse{}, fmt.Errorf("webhook %s: unparseable answer: %w", kind, err)
	}
	metrics.IncCheckoutSubmit(kind, "ok")
	return parsed, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}
