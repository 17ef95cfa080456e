// File: cmd/plandump/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"telemed-checkout/internal/config"
	catalogAdapter "telemed-checkout/internal/infra/catalog"
	"telemed-checkout/internal/infra/logging"
	"telemed-checkout/internal/usecase"
)

// Fetches the live plan catalog, normalizes it and prints the result.
// Useful for checking what the wizard will actually offer before a deploy.
func main() {
	// ---- Config ----
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	primary := catalogAdapter.NewClient(&cfg.Catalog, logger)
	fallback := catalogAdapter.NewFallback()
	catalogUC := usecase.NewCatalogUseCase(primary, fallback, cfg.Catalog.CacheTTL, logger)

	plans, degraded, err := catalogUC.Display(ctx)
	if err != nil {
		log.Fatalf("fetch catalog: %v", err)
	}
	if degraded {
		fmt.Println("WARNING: upstream catalog unreachable, showing the static fallback")
	}

	fmt.Printf("%d plans offered by the wizard:\n", len(plans))
	for _, p := range plans {
		flags := ""
		if p.BestValue {
			flags += " [melhor valor]"
		}
		if p.MostPopular {
			flags += " [mais popular]"
		}
		fmt.Printf("  - %-45s people=%d months=%d tier=%s monthly=R$%.2f price_id=%s%s\n",
			p.OriginalName, p.People, p.DurationMonths, p.Level, p.MonthlyPrice, p.StripePriceID, flags)
	}

	all, _, err := catalogUC.Plans(ctx)
	if err != nil {
		log.Fatalf("fetch full catalog: %v", err)
	}
	if extra := len(all) - len(plans); extra > 0 {
		fmt.Printf("%d single-visit (avulso) plans excluded from the wizard.\n", extra)
	}
}
