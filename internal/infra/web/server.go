// File: internal/infra/web/server.go
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telemed-checkout/internal/usecase"
)

// Server exposes the funnel's HTTP API: the plan grid, the wizard session,
// the lead checkout handoff and the dependent registration flow.
type Server struct {
	catalogUC  usecase.CatalogUseCase
	funnelUC   usecase.FunnelUseCase
	quotaUC    usecase.QuotaUseCase
	checkoutUC usecase.CheckoutUseCase
	sessions   *SessionManager
	log        *zerolog.Logger
}

func NewServer(
	catalogUC usecase.CatalogUseCase,
	funnelUC usecase.FunnelUseCase,
	quotaUC usecase.QuotaUseCase,
	checkoutUC usecase.CheckoutUseCase,
	sessions *SessionManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		catalogUC:  catalogUC,
		funnelUC:   funnelUC,
		quotaUC:    quotaUC,
		checkoutUC: checkoutUC,
		sessions:   sessions,
		log:        logger,
	}
}

// Router assembles the route tree with the standard middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/plans", s.handlePlans)

		r.Route("/funnel", func(r chi.Router) {
			r.Post("/", s.handleFunnelOpen)
			r.Get("/", s.handleFunnelGet)
			r.Post("/transition", s.handleFunnelTransition)
		})

		r.Post("/checkout", s.handleCheckout)

		r.Route("/dependents", func(r chi.Router) {
			r.Get("/quota", s.handleQuota)
			r.Post("/", s.handleRegistration)
		})
	})

	return Chain(r,
		TraceID(),
		RequestLog(s.log),
		Recover(s.log),
		Timeout(60*time.Second),
	)
}
