// File: internal/infra/redis/funnel_state.go
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-checkout/internal/domain"
	"telemed-checkout/internal/domain/model"
	"telemed-checkout/internal/domain/ports/repository"
)

// Ensure the adapter implements the port interface.
var _ repository.FunnelStateRepository = (*FunnelStateRepo)(nil)

// FunnelStateRepo keeps wizard sessions in redis as JSON blobs with a
// sliding TTL. Expired sessions surface as domain.ErrSessionNotFound.
type FunnelStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewFunnelStateRepo(client RedisClient, ttl time.Duration) *FunnelStateRepo {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &FunnelStateRepo{client: client, ttl: ttl}
}

func (s *FunnelStateRepo) stateKey(sessionID string) string {
	return fmt.Sprintf("funnel_state:%s", sessionID)
}

func (s *FunnelStateRepo) Set(ctx context.Context, state model.FunnelState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(state.SessionID), data, s.ttl)
}

func (s *FunnelStateRepo) Get(ctx context.Context, sessionID string) (model.FunnelState, error) {
	data, err := s.client.Get(ctx, s.stateKey(sessionID))
	if err != nil {
		if IsNil(err) {
			return model.FunnelState{}, domain.ErrSessionNotFound
		}
		return model.FunnelState{}, err
	}

	var state model.FunnelState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return model.FunnelState{}, err
	}
	return state, nil
}

func (s *FunnelStateRepo) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.stateKey(sessionID))
}
