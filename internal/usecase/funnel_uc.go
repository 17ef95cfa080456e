// File: internal/usecase/funnel_uc.go
package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/repository"
)

// Compile-time check
var _ FunnelUseCase = (*funnelUC)(nil)

type FunnelUseCase interface {
	// Open starts a wizard session at the default selection, keeping the
	// vendor tag and UTM query captured from the landing URL.
	Open(ctx context.Context, vendor, utmQuery string) (model.FunnelState, error)
	// Get returns the current state of a session.
	Get(ctx context.Context, sessionID string) (model.FunnelState, error)
	// Apply runs one wizard transition and persists the new state.
	Apply(ctx context.Context, sessionID string, t model.Transition) (model.FunnelState, error)
	// Selection resolves the session's current selection against the
	// catalog. Returns domain.ErrNoPlanMatch when nothing matches.
	Selection(ctx context.Context, sessionID string) (model.NormalizedPlan, model.FunnelState, error)
	// Close drops a finished session.
	Close(ctx context.Context, sessionID string) error
}

type funnelUC struct {
	states  repository.FunnelStateRepository
	catalog CatalogUseCase
	log     *zerolog.Logger
}

func NewFunnelUseCase(states repository.FunnelStateRepository, catalog CatalogUseCase, logger *zerolog.Logger) *funnelUC {
	return &funnelUC{states: states, catalog: catalog, log: logger}
}

func (u *funnelUC) Open(ctx context.Context, vendor, utmQuery string) (model.FunnelState, error) {
	state := model.NewFunnelState(uuid.NewString(), vendor, utmQuery)
	if err := u.states.Set(ctx, state); err != nil {
		return model.FunnelState{}, err
	}
	u.log.Debug().Str("session", state.SessionID).Str("vendedor", vendor).Msg("funnel session opened")
	return state, nil
}

func (u *funnelUC) Get(ctx context.Context, sessionID string) (model.FunnelState, error) {
	return u.states.Get(ctx, sessionID)
}

func (u *funnelUC) Apply(ctx context.Context, sessionID string, t model.Transition) (model.FunnelState, error) {
	state, err := u.states.Get(ctx, sessionID)
	if err != nil {
		return model.FunnelState{}, err
	}
	next, err := model.Reduce(state, t)
	if err != nil {
		return state, err
	}
	if err := u.states.Set(ctx, next); err != nil {
		return state, err
	}
	return next, nil
}

func (u *funnelUC) Selection(ctx context.Context, sessionID string) (model.NormalizedPlan, model.FunnelState, error) {
	state, err := u.states.Get(ctx, sessionID)
	if err != nil {
		return model.NormalizedPlan{}, model.FunnelState{}, err
	}
	plans, _, err := u.catalog.Plans(ctx)
	if err != nil {
		return model.NormalizedPlan{}, state, err
	}
	plan, ok := model.MatchPlan(plans, state)
	if !ok {
		return model.NormalizedPlan{}, state, domain.ErrNoPlanMatch
	}
	return plan, state, nil
}

func (u *funnelUC) Close(ctx context.Context, sessionID string) error {
	return u.states.Clear(ctx, sessionID)
}
