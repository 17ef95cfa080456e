// File: internal/usecase/quota_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
)

// Compile-time check
var _ QuotaUseCase = (*quotaUC)(nil)

type QuotaUseCase interface {
	// Quota reconciles the plan's dependent allowance with the registry's
	// count for one customer. A registry failure degrades to the optimistic
	// answer (nothing registered yet) instead of blocking the form.
	Quota(ctx context.Context, customerRef, planName string) (model.DependentQuota, error)
	// QuotaByPlanID is the landing-link variant: the payment processor
	// redirect carries a plan id and a dependent count, not a name. The
	// allowance comes from the catalog, then the static id map, then the
	// count from the link itself.
	QuotaByPlanID(ctx context.Context, customerRef, planID string, linkCount int) (string, model.DependentQuota, error)
}

type quotaUC struct {
	catalog  CatalogUseCase
	registry adapter.DependentRegistry
	log      *zerolog.Logger
}

func NewQuotaUseCase(catalog CatalogUseCase, registry adapter.DependentRegistry, logger *zerolog.Logger) *quotaUC {
	return &quotaUC{catalog: catalog, registry: registry, log: logger}
}

// staticPlanMax covers plan names sold before max_dependentes reached the
// catalog records. Keys are lowercased.
var staticPlanMax = map[string]int{
	"plano 2 para até 4 pessoas: $49,90": 4,
	"plano família":                      4,
}

type planAllowance struct {
	name string
	max  int
}

// staticPlanAllowance mirrors the registration links minted before the
// catalog carried max_dependentes, keyed by catalog plan id.
var staticPlanAllowance = map[string]planAllowance{
	"7a356177-0a97-490d-b3f0-d7f4928a10f5": {name: "assinatura_teste", max: 0},
	"fdff75fe-23c3-47d0-a84c-445532a878ef": {name: "Plano 1 pessoa - Premium (6 meses)", max: 0},
	"9b4ace5f-1874-40ad-b5e9-93446a4447b9": {name: "Plano 1 pessoa - VIP (12 meses)", max: 0},
	"fde207d4-fef1-4585-a285-c84507b85449": {name: "Plano 1 pessoa: $29,90", max: 1},
	"1adf66a5-68a2-4533-a40b-14e149399130": {name: "Plano 2 para até 4 pessoas: $49,90", max: 4},
	"94bf854e-b15e-4da3-b39d-b34cf5601388": {name: "Plano 3 consulta única: $79,90", max: 0},
	"5b82a540-c362-4769-9331-6c69387f7176": {name: "Plano 1 pessoa - Preferencial (3 meses)", max: 0},
	"46cb7319-1972-4af8-a216-d14a502f7394": {name: "Plano 4 Valor adicional por dependente (mensal)", max: 0},
	"e2fde971-8359-486f-a9b7-12c9ac6dae09": {name: "Plano 4 para até 4 pessoas - mês único: $89,90", max: 4},
	"c3323a7f-4ae6-4031-85d9-53fc892a016b": {name: "Plano 2 para até 4 pessoas - Premium (6 meses)", max: 4},
	"2e15d471-d755-441f-abbf-3ebb89ad42d6": {name: "Plano 2 para até 4 pessoas - VIP (12 meses)", max: 4},
	"108fa0a8-f6fb-46c3-a6b9-e5acce7adcf4": {name: "Plano 2 para até 4 pessoas - Preferencial (3 meses)", max: 4},
}

func (u *quotaUC) Quota(ctx context.Context, customerRef, planName string) (model.DependentQuota, error) {
	return u.reconcile(ctx, customerRef, u.resolveMax(ctx, planName))
}

func (u *quotaUC) QuotaByPlanID(ctx context.Context, customerRef, planID string, linkCount int) (string, model.DependentQuota, error) {
	name, max := u.resolveByID(ctx, planID, linkCount)
	q, err := u.reconcile(ctx, customerRef, max)
	return name, q, err
}

func (u *quotaUC) reconcile(ctx context.Context, customerRef string, max int) (model.DependentQuota, error) {
	lookup, err := u.registry.Lookup(ctx, customerRef)
	if err != nil {
		u.log.Warn().Err(err).Str("customer", customerRef).Msg("dependent registry lookup failed, assuming zero registered")
		q := model.NewDependentQuota(max, 0)
		q.Degraded = true
		return q, nil
	}
	if lookup.HasMax {
		max = lookup.MaxDependents
	}
	return model.NewDependentQuota(max, lookup.Registered), nil
}

func (u *quotaUC) resolveByID(ctx context.Context, planID string, linkCount int) (string, int) {
	if plan, ok := u.catalog.FindByID(ctx, planID); ok {
		return plan.OriginalName, plan.MaxDependents
	}
	if a, ok := staticPlanAllowance[planID]; ok {
		return a.name, a.max
	}
	if linkCount < 0 {
		linkCount = 0
	}
	return fmt.Sprintf("Plano ID: %s", planID), linkCount
}

func (u *quotaUC) resolveMax(ctx context.Context, planName string) int {
	if plan, ok := u.catalog.Find(ctx, planName); ok {
		return plan.MaxDependents
	}
	if max, ok := staticPlanMax[strings.ToLower(strings.TrimSpace(planName))]; ok {
		return max
	}
	return 0
}
