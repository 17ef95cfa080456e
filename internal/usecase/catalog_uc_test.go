// File: internal/usecase/catalog_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"telemed-checkout/internal/domain/model"
)

func rawCatalog() []model.RawPlan {
	return []model.RawPlan{
		{ID: "p1", Name: "Plano 1 pessoa: $49,90", StripePriceID: "price_m", Active: true, Price: 49.9},
		{ID: "p2", Name: "Plano 1 pessoa: $299,40 (6 meses)", StripePriceID: "price_s", Active: true, Price: 299.4},
		{ID: "p3", Name: "Plano 1 pessoa: $478,80 (12 meses)", StripePriceID: "price_a", Active: true, Price: 478.8},
		{ID: "p4", Name: "Consulta única: $89,90", StripePriceID: "price_one", Active: true, Price: 89.9},
	}
}

func TestCatalogPlans_PrimaryServed(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{raw: rawCatalog()}
	fallback := &fakeCatalogSource{}
	uc := NewCatalogUseCase(primary, fallback, time.Minute, testLogger())

	plans, degraded, err := uc.Plans(context.Background())
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if degraded {
		t.Fatalf("primary succeeded, should not be degraded")
	}
	if len(plans) != 4 {
		t.Fatalf("plans = %d, want 4", len(plans))
	}
	if fallback.callCount() != 0 {
		t.Fatalf("fallback consulted despite healthy primary")
	}
}

func TestCatalogPlans_FallbackOnUpstreamFailure(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{err: errors.New("upstream 503")}
	fallback := &fakeCatalogSource{raw: rawCatalog()[:2]}
	uc := NewCatalogUseCase(primary, fallback, time.Minute, testLogger())

	plans, degraded, err := uc.Plans(context.Background())
	if err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if !degraded {
		t.Fatalf("fallback served, degraded flag should be set")
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %d, want 2", len(plans))
	}
}

func TestCatalogPlans_BothSourcesFail(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{err: errors.New("upstream 503")}
	fallback := &fakeCatalogSource{err: errors.New("no static catalog")}
	uc := NewCatalogUseCase(primary, fallback, time.Minute, testLogger())

	if _, _, err := uc.Plans(context.Background()); err == nil {
		t.Fatalf("expected error when both sources fail")
	}
}

func TestCatalogPlans_CacheAndInvalidate(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{raw: rawCatalog()}
	uc := NewCatalogUseCase(primary, &fakeCatalogSource{}, time.Minute, testLogger())

	ctx := context.Background()
	if _, _, err := uc.Plans(ctx); err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if _, _, err := uc.Plans(ctx); err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if got := primary.callCount(); got != 1 {
		t.Fatalf("primary fetched %d times, want 1 (cached)", got)
	}

	uc.Invalidate()
	if _, _, err := uc.Plans(ctx); err != nil {
		t.Fatalf("Plans: %v", err)
	}
	if got := primary.callCount(); got != 2 {
		t.Fatalf("primary fetched %d times after invalidate, want 2", got)
	}
}

func TestCatalogDisplay_FlagsAndAvulsoExcluded(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{raw: rawCatalog()}
	uc := NewCatalogUseCase(primary, &fakeCatalogSource{}, time.Minute, testLogger())

	display, _, err := uc.Display(context.Background())
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	if len(display) != 3 {
		t.Fatalf("display plans = %d, want 3 (avulso excluded)", len(display))
	}
	for _, d := range display {
		switch d.DurationMonths {
		case model.DurationAnnual:
			if !d.BestValue {
				t.Fatalf("annual plan %q should carry the best-value flag", d.OriginalName)
			}
		case model.DurationSemester:
			if d.Level == model.LevelPremium && !d.MostPopular {
				t.Fatalf("semester premium plan %q should carry the most-popular flag", d.OriginalName)
			}
		default:
			if d.BestValue || d.MostPopular {
				t.Fatalf("plan %q unexpectedly flagged", d.OriginalName)
			}
		}
	}
}

func TestCatalogDisplay_BestValueIsLowestMonthlyEquivalent(t *testing.T) {
	t.Parallel()

	// The cheap monthly plan undercuts the annual plan's monthly
	// equivalent (10.00 vs 29.90), so it must carry the flag even
	// though longer durations usually win.
	primary := &fakeCatalogSource{raw: []model.RawPlan{
		{ID: "cheap", Name: "Plano 1 pessoa: $10,00", StripePriceID: "price_cheap", Active: true, Price: 10},
		{ID: "year", Name: "Plano 1 pessoa: $358,80 (12 meses)", StripePriceID: "price_year", Active: true, Price: 358.8},
		{ID: "fam6", Name: "Plano 2 para até 4 pessoas: $299,40 (6 meses)", StripePriceID: "price_fam6", Active: true, Price: 299.4},
	}}
	uc := NewCatalogUseCase(primary, &fakeCatalogSource{}, time.Minute, testLogger())

	display, _, err := uc.Display(context.Background())
	if err != nil {
		t.Fatalf("Display: %v", err)
	}
	for _, d := range display {
		switch d.ID {
		case "cheap":
			if !d.BestValue {
				t.Fatalf("lowest monthly-equivalent plan should carry the best-value flag")
			}
		default:
			if d.BestValue {
				t.Fatalf("plan %q flagged best value over a cheaper monthly equivalent", d.OriginalName)
			}
		}
		if d.ID == "fam6" && d.MostPopular {
			t.Fatalf("family semester plan flagged most popular; the flag is for 1-person plans only")
		}
	}
}

func TestCatalogFind(t *testing.T) {
	t.Parallel()

	primary := &fakeCatalogSource{raw: rawCatalog()}
	uc := NewCatalogUseCase(primary, &fakeCatalogSource{}, time.Minute, testLogger())

	plan, ok := uc.Find(context.Background(), "Plano 1 pessoa: $299,40 (6 meses)")
	if !ok {
		t.Fatalf("plan not found by exact name")
	}
	if plan.StripePriceID != "price_s" {
		t.Fatalf("found wrong plan: %+v", plan)
	}
	if _, ok := uc.Find(context.Background(), "no such plan"); ok {
		t.Fatalf("unexpected match for unknown name")
	}
}
