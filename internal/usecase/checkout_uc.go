// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/adapter"
	"telemed-checkout/internal/validation"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

// FormValidator is the slice of the validation package the checkout flow
// needs; tests substitute their own.
type FormValidator interface {
	ValidateLead(lead model.Lead) []validation.FieldError
	ValidateRegistration(form model.RegistrationForm, expected int) []validation.FieldError
}

type CheckoutUseCase interface {
	// SubmitLead validates the lead form, resolves the session's selected
	// plan and posts the lead to the checkout webhook. Returns the payment
	// redirect URL; a 2xx without one is domain.ErrNoRedirectURL.
	SubmitLead(ctx context.Context, sessionID string, lead model.Lead) (string, error)
	// SubmitRegistration reconciles the customer's dependent quota,
	// validates the form against it and posts the registration. The
	// returned redirect URL may be empty; the upstream sometimes answers
	// with a bare confirmation.
	SubmitRegistration(ctx context.Context, customerRef string, form model.RegistrationForm) (string, model.DependentQuota, error)
}

type checkoutUC struct {
	funnel    FunnelUseCase
	quota     QuotaUseCase
	webhook   adapter.CheckoutWebhook
	validator FormValidator
	log       *zerolog.Logger
}

func NewCheckoutUseCase(funnel FunnelUseCase, quota QuotaUseCase, webhook adapter.CheckoutWebhook, v FormValidator, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{funnel: funnel, quota: quota, webhook: webhook, validator: v, log: logger}
}

func (u *checkoutUC) SubmitLead(ctx context.Context, sessionID string, lead model.Lead) (string, error) {
	if fields := u.validator.ValidateLead(lead); len(fields) > 0 {
		return "", &validation.Error{Fields: fields}
	}

	plan, state, err := u.funnel.Selection(ctx, sessionID)
	if err != nil {
		return "", err
	}

	idemKey := ulid.Make().String()
	payload := model.NewLeadCheckoutPayload(lead, plan, state.Vendor, state.UTMQuery, idemKey)

	resp, err := u.webhook.SubmitLead(ctx, payload)
	if err != nil {
		return "", err
	}
	redirect := resp.RedirectURL()
	if redirect == "" {
		u.log.Error().Str("session", sessionID).Str("plan", plan.OriginalName).Msg("lead accepted but no redirect url in response")
		return "", domain.ErrNoRedirectURL
	}

	// The session is spent once the visitor leaves for payment. Best
	// effort; TTL expiry covers a failed clear.
	if err := u.funnel.Close(ctx, sessionID); err != nil {
		u.log.Warn().Err(err).Str("session", sessionID).Msg("could not clear funnel session after lead submit")
	}
	return redirect, nil
}

func (u *checkoutUC) SubmitRegistration(ctx context.Context, customerRef string, form model.RegistrationForm) (string, model.DependentQuota, error) {
	quota, err := u.quota.Quota(ctx, customerRef, form.PlanName)
	if err != nil {
		return "", model.DependentQuota{}, err
	}
	if quota.Exhausted() {
		return "", quota, domain.ErrQuotaExhausted
	}

	if fields := u.validator.ValidateRegistration(form, quota.Remaining); len(fields) > 0 {
		return "", quota, &validation.Error{Fields: fields}
	}

	idemKey := ulid.Make().String()
	payload := model.NewRegistrationPayload(form, quota, customerRef, idemKey)

	resp, err := u.webhook.SubmitRegistration(ctx, payload)
	if err != nil {
		return "", quota, err
	}
	return resp.RedirectURL(), quota, nil
}
