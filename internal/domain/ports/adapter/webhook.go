package adapter

import (
	"context"

	"telemed-checkout/internal/domain/model"
)

// CheckoutWebhook posts the two funnel submissions to their external
// endpoints and returns the parsed response. Implementations attach the
// payload's idempotency key as a request header.
type CheckoutWebhook interface {
	SubmitLead(ctx context.Context, payload model.LeadCheckoutPayload) (model.WebhookResponse, error)
	SubmitRegistration(ctx context.Context, payload model.RegistrationPayload) (model.WebhookResponse, error)
}
