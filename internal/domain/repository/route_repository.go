package repository

import (
	"context"

	"flightchange-service/internal/domain/entity"
)

// RouteRepository defines the interface for route operations
type RouteRepository interface {
	// Any reports whether any routes exist in the store.
	Any(ctx context.Context) (bool, error)
	// ListAll returns every stored route.
	ListAll(ctx context.Context) ([]*entity.Route, error)
	// FindByIDs returns the routes matching the given surrogate ids,
	// keyed by id. Ids with no match are absent from the map.
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*entity.Route, error)
	// PersistBatch saves one import batch in a single transaction:
	// created routes are inserted (their RouteID is filled in on return),
	// updated routes are overwritten in place.
	PersistBatch(ctx context.Context, created []*entity.Route, updated []*entity.Route) error
}
