// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/domain/ports/repository"
	"telemed-checkout/internal/validation"
)

// testLogger returns a silent logger for use in tests.
func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// --- PlanCatalog ---

type fakeCatalogSource struct {
	mu    sync.Mutex
	raw   []model.RawPlan
	err   error
	calls int
}

var _ adapter.PlanCatalog = (*fakeCatalogSource)(nil)

func (f *fakeCatalogSource) FetchRaw(ctx context.Context) ([]model.RawPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.raw, nil
}

func (f *fakeCatalogSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// --- DependentRegistry ---

type fakeRegistry struct {
	lookup  adapter.RegistryLookup
	err     error
	lastRef string
}

var _ adapter.DependentRegistry = (*fakeRegistry)(nil)

func (f *fakeRegistry) Lookup(ctx context.Context, customerRef string) (adapter.RegistryLookup, error) {
	f.lastRef = customerRef
	if f.err != nil {
		return adapter.RegistryLookup{}, f.err
	}
	return f.lookup, nil
}

// --- FunnelStateRepository ---

type memFunnelStateRepo struct {
	mu     sync.Mutex
	states map[string]model.FunnelState
	setErr error
}

var _ repository.FunnelStateRepository = (*memFunnelStateRepo)(nil)

func newMemFunnelStateRepo() *memFunnelStateRepo {
	return &memFunnelStateRepo{states: make(map[string]model.FunnelState)}
}

func (m *memFunnelStateRepo) Set(ctx context.Context, state model.FunnelState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.states[state.SessionID] = state
	return nil
}

func (m *memFunnelStateRepo) Get(ctx context.Context, sessionID string) (model.FunnelState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[sessionID]
	if !ok {
		return model.FunnelState{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *memFunnelStateRepo) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	return nil
}

// --- CheckoutWebhook ---

type fakeWebhook struct {
	leadResp model.WebhookResponse
	leadErr  error
	regResp  model.WebhookResponse
	regErr   error

	lastLead  model.LeadCheckoutPayload
	lastReg   model.RegistrationPayload
	leadCalls int
	regCalls  int
}

var _ adapter.CheckoutWebhook = (*fakeWebhook)(nil)

func (f *fakeWebhook) SubmitLead(ctx context.Context, payload model.LeadCheckoutPayload) (model.WebhookResponse, error) {
	f.leadCalls++
	f.lastLead = payload
	return f.leadResp, f.leadErr
}

func (f *fakeWebhook) SubmitRegistration(ctx context.Context, payload model.RegistrationPayload) (model.WebhookResponse, error) {
	f.regCalls++
	f.lastReg = payload
	return f.regResp, f.regErr
}

// --- FormValidator ---

type fakeValidator struct {
	leadFields []validation.FieldError
	regFields  []validation.FieldError

	lastExpected int
}

var _ FormValidator = (*fakeValidator)(nil)

func (f *fakeValidator) ValidateLead(lead model.Lead) []validation.FieldError {
	return f.leadFields
}

func (f *fakeValidator) ValidateRegistration(form model.RegistrationForm, expected int) []validation.FieldError {
	f.lastExpected = expected
	return f.regFields
}
