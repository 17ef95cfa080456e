// File: internal/infra/catalog/client.go

// Package catalog implements the plan catalog port against the hosted
// PostgREST endpoint, with a static fallback for when it is unreachable.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"telemed-checkout/internal/config"
	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/infra/metrics"
)

// Compile-time check
var _ adapter.PlanCatalog = (*Client)(nil)

// Client fetches active plans from the catalog REST API. Calls go through
// a circuit breaker so a dead upstream fails fast instead of eating the
// request timeout on every page view.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]model.RawPlan]
	log     *zerolog.Logger
}

func NewClient(cfg *config.CatalogConfig, logger *zerolog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker[[]model.RawPlan](gobreaker.Settings{
		Name:        "plan-catalog",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: cb,
		log:     logger,
	}
}

func (c *Client) FetchRaw(ctx context.Context) ([]model.RawPlan, error) {
	start := time.Now()
	plans, err := c.breaker.Execute(func() ([]model.RawPlan, error) {
		return c.fetch(ctx)
	})
	metrics.ObserveCatalogFetch("upstream", time.Since(start).Seconds())
	if err != nil {
		metrics.IncCatalogFetch("upstream", "error")
		return nil, err
	}
	metrics.IncCatalogFetch("upstream", "ok")
	metrics.SetCatalogPlansServed(len(plans))
	return plans, nil
}

func (c *Client) fetch(ctx context.Context) ([]model.RawPlan, error) {
	url := c.baseURL + "/rest/v1/Plano?select=*&ativo=is.true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Range", "0-99")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Bytes("body", body).Msg("catalog upstream returned non-2xx")
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var plans []model.RawPlan
	if err := json.NewDecoder(resp.Body).Decode(&plans); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	// An empty answer means a misconfigured upstream, not an empty store.
	if len(plans) == 0 {
		return nil, fmt.Errorf("%w: empty plan list", domain.ErrCatalogUnavailable)
	}
	return plans, nil
}
