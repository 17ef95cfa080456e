// File: internal/usecase/catalog_uc.go
package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// DisplayPlan is a catalog plan annotated with the storefront highlight
// flags the plan grid renders.
type DisplayPlan struct {
	model.NormalizedPlan
	BestValue   bool `json:"melhor_valor"`
	MostPopular bool `json:"mais_popular"`
}

type CatalogUseCase interface {
	// Plans returns the normalized catalog, served from cache when fresh.
	// When the upstream is down the static fallback catalog is used and
	// the degraded flag is true.
	Plans(ctx context.Context) ([]model.NormalizedPlan, bool, error)
	// Display returns the wizard's selectable plans with highlight flags,
	// avulso plans excluded.
	Display(ctx context.Context) ([]DisplayPlan, bool, error)
	// Find returns the first plan whose original name matches exactly.
	Find(ctx context.Context, name string) (model.NormalizedPlan, bool)
	// FindByID returns the plan with the given catalog id.
	FindByID(ctx context.Context, id string) (model.NormalizedPlan, bool)
	// Invalidate drops the cached catalog.
	Invalidate()
}

type catalogUC struct {
	primary  adapter.PlanCatalog
	fallback adapter.PlanCatalog
	ttl      time.Duration
	log      *zerolog.Logger

	mu       sync.RWMutex
	cached   []model.NormalizedPlan
	degraded bool
	expires  time.Time
}

// NewCatalogUseCase constructs the catalog use case. fallback serves when
// primary fails; ttl <= 0 disables caching.
func NewCatalogUseCase(primary, fallback adapter.PlanCatalog, ttl time.Duration, logger *zerolog.Logger) *catalogUC {
	return &catalogUC{primary: primary, fallback: fallback, ttl: ttl, log: logger}
}

func (u *catalogUC) Plans(ctx context.Context) ([]model.NormalizedPlan, bool, error) {
	u.mu.RLock()
	if u.cached != nil && time.Now().Before(u.expires) {
		plans, degraded := u.cached, u.degraded
		u.mu.RUnlock()
		return plans, degraded, nil
	}
	u.mu.RUnlock()

	raw, err := u.primary.FetchRaw(ctx)
	degraded := false
	if err != nil {
		u.log.Warn().Err(err).Msg("plan catalog upstream failed, serving static fallback")
		degraded = true
		raw, err = u.fallback.FetchRaw(ctx)
		if err != nil {
			return nil, true, err
		}
	}

	plans := model.NormalizePlans(raw)

	u.mu.Lock()
	u.cached = plans
	u.degraded = degraded
	u.expires = time.Now().Add(u.ttl)
	u.mu.Unlock()

	return plans, degraded, nil
}

func (u *catalogUC) Display(ctx context.Context) ([]DisplayPlan, bool, error) {
	plans, degraded, err := u.Plans(ctx)
	if err != nil {
		return nil, degraded, err
	}
	out := make([]DisplayPlan, 0, len(plans))
	bestID := ""
	bestMonthly := 0.0
	for _, p := range plans {
		if p.Level == model.LevelAvulso {
			continue
		}
		if bestID == "" || p.MonthlyPrice < bestMonthly {
			bestID, bestMonthly = p.ID, p.MonthlyPrice
		}
		out = append(out, DisplayPlan{
			NormalizedPlan: p,
			MostPopular: p.People == model.PeopleOne &&
				p.Level == model.LevelPremium &&
				p.DurationMonths == model.DurationSemester,
		})
	}
	for i := range out {
		out[i].BestValue = out[i].ID == bestID
	}
	return out, degraded, nil
}

func (u *catalogUC) Find(ctx context.Context, name string) (model.NormalizedPlan, bool) {
	plans, _, err := u.Plans(ctx)
	if err != nil {
		return model.NormalizedPlan{}, false
	}
	for _, p := range plans {
		if p.OriginalName == name {
			return p, true
		}
	}
	return model.NormalizedPlan{}, false
}

func (u *catalogUC) FindByID(ctx context.Context, id string) (model.NormalizedPlan, bool) {
	plans, _, err := u.Plans(ctx)
	if err != nil {
		return model.NormalizedPlan{}, false
	}
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return model.NormalizedPlan{}, false
}

func (u *catalogUC) Invalidate() {
	u.mu.Lock()
	u.cached = nil
	u.expires = time.Time{}
	u.mu.Unlock()
}
