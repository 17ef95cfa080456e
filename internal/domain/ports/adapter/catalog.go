package adapter

import (
	"context"

	"telemed-checkout/internal/domain/model"
)

// PlanCatalog fetches the raw plan records from the upstream catalog API.
// Implementations must return an error (not an empty slice) when the
// upstream is unusable so the caller can fall back to the static catalog.
type PlanCatalog interface {
	FetchRaw(ctx context.Context) ([]model.RawPlan, error)
}
