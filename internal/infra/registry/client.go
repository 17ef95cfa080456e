// File: internal/infra/registry/client.go

// Package registry implements the dependent registry port over the
// automation backend's lookup endpoint.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/config"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/infra/metrics"
)

// Compile-time check
var _ adapter.DependentRegistry = (*Client)(nil)

type Client struct {
	url  string
	http *http.Client
	log  *zerolog.Logger
}

func NewClient(cfg *config.RegistryConfig, logger *zerolog.Logger) *Client {
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// countAnswer is the object form of the lookup response. Older revisions
// of the upstream answer with a bare JSON array of dependent records
// instead; both are accepted.
type countAnswer struct {
	Registered    *int `json:"cadastrados"`
	MaxDependents *int `json:"max_dependentes"`
}

func (c *Client) Lookup(ctx context.Context, customerRef string) (adapter.RegistryLookup, error) {
	payload, err := json.Marshal(map[string]string{"customer": customerRef})
	if err != nil {
		return adapter.RegistryLookup{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return adapter.RegistryLookup{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.IncQuotaLookup("error")
		return adapter.RegistryLookup{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.IncQuotaLookup("error")
		return adapter.RegistryLookup{}, fmt.Errorf("dependent registry: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		metrics.IncQuotaLookup("error")
		return adapter.RegistryLookup{}, err
	}

	lookup, err := parseLookup(body)
	if err != nil {
		metrics.IncQuotaLookup("error")
		c.log.Warn().Err(err).Str("customer", customerRef).Msg("unparseable registry answer")
		return adapter.RegistryLookup{}, err
	}
	metrics.IncQuotaLookup("ok")
	return lookup, nil
}

func parseLookup(body []byte) (adapter.RegistryLookup, error) {
	// Array form: one element per registered dependent.
	var records []json.RawMessage
	if err := json.Unmarshal(body, &records); err == nil {
		return adapter.RegistryLookup{Registered: len(records)}, nil
	}

	var answer countAnswer
	if err := json.Unmarshal(body, &answer); err != nil {
		return adapter.RegistryLookup{}, fmt.Errorf("dependent registry: %w", err)
	}
	if answer.Registered == nil {
		return adapter.RegistryLookup{}, fmt.Errorf("dependent registry: answer carries no count")
	}
	lookup := adapter.RegistryLookup{Registered: *answer.Registered}
	if answer.MaxDependents != nil {
		lookup.MaxDependents = *answer.MaxDependents
		lookup.HasMax = true
	}
	return lookup, nil
}
