// File: internal/infra/web/handlers.go
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/infra/logging"
	"telemed-checkout/internal/infra/metrics"
	"telemed-checkout/internal/usecase"
	"telemed-checkout/internal/validation"
)

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "dados inválidos", Fields: verr.Fields})
	case errors.Is(err, domain.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "sessão expirada ou inexistente"})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "parâmetro inválido"})
	case errors.Is(err, domain.ErrQuotaExhausted):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "todos os dependentes deste plano já foram cadastrados"})
	case errors.Is(err, domain.ErrNoPlanMatch):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "nenhum plano corresponde à seleção atual"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "catálogo de planos indisponível"})
	case errors.Is(err, domain.ErrUpstreamRejected), errors.Is(err, domain.ErrNoRedirectURL):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "falha ao iniciar o checkout, tente novamente"})
	default:
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "erro interno"})
	}
}

// utmQuery re-encodes the tracking parameters from the landing URL, in a
// stable order, so the lead payload carries them verbatim.
func utmQuery(q url.Values) string {
	keys := make([]string, 0, len(q))
	for k := range q {
		if strings.HasPrefix(strings.ToLower(k), "utm_") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	out := url.Values{}
	for _, k := range keys {
		out[k] = q[k]
	}
	return out.Encode()
}

// customerRefFrom accepts both spellings seen on minted registration
// links.
func customerRefFrom(q url.Values) string {
	if v := q.Get("Customer_stripe"); v != "" {
		return v
	}
	return q.Get("Custumer_stripe")
}

// --- plan grid ---

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	plans, degraded, err := s.catalogUC.Display(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Plans    []usecase.DisplayPlan `json:"planos"`
		Degraded bool                  `json:"degradado"`
	}{Plans: plans, Degraded: degraded})
}

// --- wizard session ---

type funnelStateResponse struct {
	State model.FunnelState     `json:"state"`
	Plan  *model.NormalizedPlan `json:"plano,omitempty"`
}

func (s *Server) selectionOf(r *http.Request, sessionID string) *model.NormalizedPlan {
	plan, _, err := s.funnelUC.Selection(r.Context(), sessionID)
	if err != nil {
		return nil
	}
	return &plan
}

func (s *Server) handleFunnelOpen(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state, err := s.funnelUC.Open(r.Context(), q.Get("vendedor"), utmQuery(q))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.sessions.Mint(w, state.SessionID); err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.IncFunnelSession("opened")
	writeJSON(w, http.StatusCreated, funnelStateResponse{
		State: state,
		Plan:  s.selectionOf(r, state.SessionID),
	})
}

func (s *Server) handleFunnelGet(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessions.SessionIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, domain.ErrSessionNotFound)
		return
	}
	state, err := s.funnelUC.Get(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.IncFunnelSession("expired_miss")
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, funnelStateResponse{
		State: state,
		Plan:  s.selectionOf(r, sessionID),
	})
}

func (s *Server) handleFunnelTransition(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessions.SessionIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, domain.ErrSessionNotFound)
		return
	}

	var t model.Transition
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}

	state, err := s.funnelUC.Apply(r.Context(), sessionID, t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	metrics.IncFunnelSession("transition")
	writeJSON(w, http.StatusOK, funnelStateResponse{
		State: state,
		Plan:  s.selectionOf(r, sessionID),
	})
}

// --- lead checkout ---

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	sessionID, err := s.sessions.SessionIDFromRequest(r)
	if err != nil {
		s.writeError(w, r, domain.ErrSessionNotFound)
		return
	}

	var lead model.Lead
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}

	redirect, err := s.checkoutUC.SubmitLead(r.Context(), sessionID, lead)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.sessions.Clear(w)
	metrics.IncFunnelSession("closed")
	writeJSON(w, http.StatusOK, struct {
		CheckoutURL string `json:"checkout_url"`
	}{CheckoutURL: redirect})
}

// --- dependents ---

func (s *Server) handleQuota(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	planID := q.Get("plano")
	customer := customerRefFrom(q)
	if planID == "" || customer == "" {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	linkCount := 0
	if raw := q.Get("dependentes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, r, &validation.Error{Fields: []validation.FieldError{
				{Field: "dependentes", Message: "Número de dependentes inválido"},
			}})
			return
		}
		linkCount = n
	}

	ctx := logging.WithCustomer(r.Context(), customer)
	name, quota, err := s.quotaUC.QuotaByPlanID(ctx, customer, planID, linkCount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if quota.Degraded {
		metrics.IncQuotaDegraded()
	}
	writeJSON(w, http.StatusOK, struct {
		Plan  string               `json:"plano"`
		Quota model.DependentQuota `json:"quota"`
	}{Plan: name, Quota: quota})
}

type registrationRequest struct {
	model.RegistrationForm
	CustomerStripe string `json:"customerStripe"`
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}
	customer := req.CustomerStripe
	if customer == "" {
		customer = customerRefFrom(r.URL.Query())
	}
	if customer == "" {
		s.writeError(w, r, domain.ErrInvalidArgument)
		return
	}

	ctx := logging.WithCustomer(r.Context(), customer)
	redirect, quota, err := s.checkoutUC.SubmitRegistration(ctx, customer, req.RegistrationForm)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Success     bool                 `json:"success"`
		RedirectURL string               `json:"redirect_url,omitempty"`
		Quota       model.DependentQuota `json:"quota"`
	}{Success: true, RedirectURL: redirect, Quota: quota})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
