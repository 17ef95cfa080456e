package repository

import (
	"context"

	"telemed-checkout/internal/domain/model"
)

// FunnelStateRepository holds wizard sessions between requests. Sessions
// are short-lived and expire with the store's TTL; a missing session maps
// to domain.ErrSessionNotFound.
type FunnelStateRepository interface {
	Set(ctx context.Context, state model.FunnelState) error
	Get(ctx context.Context, sessionID string) (model.FunnelState, error)
	Clear(ctx context.Context, sessionID string) error
}
