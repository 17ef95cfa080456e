// File: internal/infra/web/mock_test.go
package web

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/usecase"
)

func testLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

func testSessions() *SessionManager {
	return NewSessionManager("test-secret", false, "", time.Hour)
}

// --- CatalogUseCase ---

type mockCatalogUC struct {
	plans    []model.NormalizedPlan
	display  []usecase.DisplayPlan
	degraded bool
	err      error
}

var _ usecase.CatalogUseCase = (*mockCatalogUC)(nil)

func (m *mockCatalogUC) Plans(ctx context.Context) ([]model.NormalizedPlan, bool, error) {
	return m.plans, m.degraded, m.err
}

func (m *mockCatalogUC) Display(ctx context.Context) ([]usecase.DisplayPlan, bool, error) {
	return m.display, m.degraded, m.err
}

func (m *mockCatalogUC) Find(ctx context.Context, name string) (model.NormalizedPlan, bool) {
	for _, p := range m.plans {
		if p.OriginalName == name {
			return p, true
		}
	}
	return model.NormalizedPlan{}, false
}

func (m *mockCatalogUC) FindByID(ctx context.Context, id string) (model.NormalizedPlan, bool) {
	for _, p := range m.plans {
		if p.ID == id {
			return p, true
		}
	}
	return model.NormalizedPlan{}, false
}

func (m *mockCatalogUC) Invalidate() {}

// --- FunnelUseCase ---

type mockFunnelUC struct {
	states map[string]model.FunnelState
	plan   model.NormalizedPlan
	planOK bool
}

var _ usecase.FunnelUseCase = (*mockFunnelUC)(nil)

func newMockFunnelUC() *mockFunnelUC {
	return &mockFunnelUC{states: map[string]model.FunnelState{}}
}

func (m *mockFunnelUC) Open(ctx context.Context, vendor, utmQuery string) (model.FunnelState, error) {
	s := model.NewFunnelState("sess-test", vendor, utmQuery)
	m.states[s.SessionID] = s
	return s, nil
}

func (m *mockFunnelUC) Get(ctx context.Context, sessionID string) (model.FunnelState, error) {
	s, ok := m.states[sessionID]
	if !ok {
		return model.FunnelState{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockFunnelUC) Apply(ctx context.Context, sessionID string, t model.Transition) (model.FunnelState, error) {
	s, ok := m.states[sessionID]
	if !ok {
		return model.FunnelState{}, domain.ErrSessionNotFound
	}
	next, err := model.Reduce(s, t)
	if err != nil {
		return s, err
	}
	m.states[sessionID] = next
	return next, nil
}

func (m *mockFunnelUC) Selection(ctx context.Context, sessionID string) (model.NormalizedPlan, model.FunnelState, error) {
	s, ok := m.states[sessionID]
	if !ok {
		return model.NormalizedPlan{}, model.FunnelState{}, domain.ErrSessionNotFound
	}
	if !m.planOK {
		return model.NormalizedPlan{}, s, domain.ErrNoPlanMatch
	}
	return m.plan, s, nil
}

func (m *mockFunnelUC) Close(ctx context.Context, sessionID string) error {
	delete(m.states, sessionID)
	return nil
}

// --- QuotaUseCase ---

type mockQuotaUC struct {
	planName string
	quota    model.DependentQuota
	err      error

	lastCustomer string
	lastPlanID   string
	lastCount    int
}

var _ usecase.QuotaUseCase = (*mockQuotaUC)(nil)

func (m *mockQuotaUC) Quota(ctx context.Context, customerRef, planName string) (model.DependentQuota, error) {
	m.lastCustomer = customerRef
	return m.quota, m.err
}

func (m *mockQuotaUC) QuotaByPlanID(ctx context.Context, customerRef, planID string, linkCount int) (string, model.DependentQuota, error) {
	m.lastCustomer = customerRef
	m.lastPlanID = planID
	m.lastCount = linkCount
	return m.planName, m.quota, m.err
}

// --- CheckoutUseCase ---

type mockCheckoutUC struct {
	redirect string
	quota    model.DependentQuota
	leadErr  error
	regErr   error

	lastSession  string
	lastLead     model.Lead
	lastCustomer string
	lastForm     model.RegistrationForm
}

var _ usecase.CheckoutUseCase = (*mockCheckoutUC)(nil)

func (m *mockCheckoutUC) SubmitLead(ctx context.Context, sessionID string, lead model.Lead) (string, error) {
	m.lastSession = sessionID
	m.lastLead = lead
	if m.leadErr != nil {
		return "", m.leadErr
	}
	return m.redirect, nil
}

func (m *mockCheckoutUC) SubmitRegistration(ctx context.Context, customerRef string, form model.RegistrationForm) (string, model.DependentQuota, error) {
	m.lastCustomer = customerRef
	m.lastForm = form
	if m.regErr != nil {
		return "", m.quota, m.regErr
	}
	return m.redirect, m.quota, nil
}
