// File: cmd/app/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telemed-checkout/internal/config"
	catalogAdapter "telemed-checkout/internal/infra/catalog"
	"telemed-checkout/internal/infra/logging"
	"telemed-checkout/internal/infra/metrics"
	red "telemed-checkout/internal/infra/redis"
	registryAdapter "telemed-checkout/internal/infra/registry"
	"telemed-checkout/internal/infra/web"
	webhookAdapter "telemed-checkout/internal/infra/webhook"
	"telemed-checkout/internal/usecase"
	"telemed-checkout/internal/validation"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	funnelRepo := red.NewFunnelStateRepo(redisClient, cfg.Redis.TTL)

	// ---- Adapters ----
	catalogClient := catalogAdapter.NewClient(&cfg.Catalog, logger)
	catalogFallback := catalogAdapter.NewFallback()
	registryClient := registryAdapter.NewClient(&cfg.Registry, logger)
	webhookClient := webhookAdapter.NewClient(&cfg.Webhook, logger)

	// ---- Use cases ----
	catalogUC := usecase.NewCatalogUseCase(catalogClient, catalogFallback, cfg.Catalog.CacheTTL, logger)
	funnelUC := usecase.NewFunnelUseCase(funnelRepo, catalogUC, logger)
	quotaUC := usecase.NewQuotaUseCase(catalogUC, registryClient, logger)
	checkoutUC := usecase.NewCheckoutUseCase(funnelUC, quotaUC, webhookClient, validation.New(), logger)

	// ---- HTTP ----
	jwtSecret := cfg.Security.JWTSecret
	if jwtSecret == "" {
		logger.Warn().Msg("security.jwt_secret not set; falling back to dev secret (INSECURE)")
		jwtSecret = "dev-secret-change-me"
	}
	sessions := web.NewSessionManager(jwtSecret, !cfg.Runtime.Dev, "", cfg.Security.SessionExpiry)

	server := web.NewServer(catalogUC, funnelUC, quotaUC, checkoutUC, sessions, logger)
	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
