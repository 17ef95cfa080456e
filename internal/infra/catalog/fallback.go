// File: internal/infra/catalog/fallback.go
package catalog

import (
	"context"

	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/infra/metrics"
)

// Compile-time check
var _ adapter.PlanCatalog = (*Fallback)(nil)

// Fallback serves a frozen copy of the storefront catalog so the funnel
// keeps rendering when the upstream is down. Prices here mirror the live
// records at the time of the last sync; checkout still resolves the real
// price through the payment processor, so a stale value only affects the
// display.
type Fallback struct{}

func NewFallback() *Fallback { return &Fallback{} }

func (f *Fallback) FetchRaw(ctx context.Context) ([]model.RawPlan, error) {
	out := make([]model.RawPlan, len(staticPlans))
	copy(out, staticPlans)
	metrics.IncCatalogFetch("fallback", "ok")
	return out, nil
}

func intp(v int) *int { return &v }

var staticPlans = []model.RawPlan{
	{
		ID:              "fdff75fe-23c3-47d0-a84c-445532a878ef",
		Name:            "Plano 1 pessoa - Premium (6 meses)",
		StripeProductID: "prod_T7VHLHht1SECk3",
		StripePriceID:   "price_1SBbYaGbfw1lxjkCCt50fWPC",
		Active:          true,
		Price:           179.4,
		PlanGroup:       "plano 1",
	},
	{
		ID:              "9b4ace5f-1874-40ad-b5e9-93446a4447b9",
		Name:            "Plano 1 pessoa - VIP (12 meses)",
		StripeProductID: "prod_T7VHLHht1SECk3",
		StripePriceID:   "price_1SBbZjGbfw1lxjkCEVLv6Ukp",
		Active:          true,
		Price:           358.8,
		PlanGroup:       "plano 1",
	},
	{
		ID:              "fde207d4-fef1-4585-a285-c84507b85449",
		Name:            "Plano 1 pessoa: $29,90",
		StripeProductID: "prod_T7VHLHht1SECk3",
		StripePriceID:   "price_1SBGHOGbfw1lxjkCdiZfIlIG",
		MaxDependents:   1,
		MaxSessionsMo:   intp(6),
		Active:          true,
		Price:           29.9,
		PlanGroup:       "plano 1",
	},
	{
		ID:              "1adf66a5-68a2-4533-a40b-14e149399130",
		Name:            "Plano 2 para até 4 pessoas: $49,90",
		StripeProductID: "prod_T7VLmlZ4zjAmg4",
		StripePriceID:   "price_1SBGKSGbfw1lxjkClws15uCH",
		MaxDependents:   4,
		MaxSessionsMo:   intp(6),
		Active:          true,
		Price:           49.9,
		PlanGroup:       "plano 2",
	},
	{
		ID:              "94bf854e-b15e-4da3-b39d-b34cf5601388",
		Name:            "Plano 3 consulta única: $79,90",
		StripeProductID: "prod_T7VLwiGWeiuErf",
		StripePriceID:   "price_1SBGLDGbfw1lxjkCtKHplT67",
		MaxSessionsMo:   intp(1),
		Active:          true,
		Price:           79.9,
		PlanGroup:       "plano 3",
	},
	{
		ID:              "5b82a540-c362-4769-9331-6c69387f7176",
		Name:            "Plano 1 pessoa - Preferencial (3 meses)",
		StripeProductID: "prod_T1scfj64yakM2I",
		StripePriceID:   "price_1SBLoSGbfw1lxjkCoBIpr7Ue",
		Active:          true,
		Price:           89.7,
		PlanGroup:       "plano 1",
	},
	{
		ID:              "e2fde971-8359-486f-a9b7-12c9ac6dae09",
		Name:            "Plano 4 para até 4 pessoas - mês único: $89,90",
		StripeProductID: "prod_T7VM1qRjhaTZpN",
		StripePriceID:   "price_1SBGMCGbfw1lxjkCKQ3GrH2Z",
		MaxDependents:   4,
		MaxSessionsMo:   intp(4),
		Active:          true,
		Price:           89.9,
		PlanGroup:       "plano 4",
	},
	{
		ID:              "c3323a7f-4ae6-4031-85d9-53fc892a016b",
		Name:            "Plano 2 para até 4 pessoas - Premium (6 meses)",
		StripeProductID: "prod_T7VLmlZ4zjAmg4",
		StripePriceID:   "price_1SBbcpGbfw1lxjkCUlZhs6wW",
		MaxDependents:   4,
		Active:          true,
		Price:           299.4,
		PlanGroup:       "plano 2",
	},
	{
		ID:              "2e15d471-d755-441f-abbf-3ebb89ad42d6",
		Name:            "Plano 2 para até 4 pessoas - VIP (12 meses)",
		StripeProductID: "prod_T7VLmlZ4zjAmg4",
		StripePriceID:   "price_1SBbcpGbfw1lxjkCNxkzXTyn",
		MaxDependents:   4,
		Active:          true,
		Price:           598.8,
		PlanGroup:       "plano 2",
	},
	{
		ID:              "108fa0a8-f6fb-46c3-a6b9-e5acce7adcf4",
		Name:            "Plano 2 para até 4 pessoas - Preferencial (3 meses)",
		StripeProductID: "prod_T7VLmlZ4zjAmg4",
		StripePriceID:   "price_1SBbcpGbfw1lxjkCj8R3ZvOk",
		MaxDependents:   4,
		Active:          true,
		Price:           149.9,
		PlanGroup:       "plano 2",
	},
}
