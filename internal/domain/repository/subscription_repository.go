package repository

import (
	"context"

	"flightchange-service/internal/domain/entity"
)

// SubscriptionRepository defines the interface for subscription operations
type SubscriptionRepository interface {
	// FindByKey looks up a subscription by its composite key. Returns
	// (nil, nil) when no subscription matches.
	FindByKey(ctx context.Context, agencyID, originCityID, destinationCityID int) (*entity.Subscription, error)
	// PersistBatch saves one import batch in a single transaction.
	PersistBatch(ctx context.Context, created []*entity.Subscription, updated []*entity.Subscription) error
	// ListByAgency returns every subscription held by the given agency.
	ListByAgency(ctx context.Context, agencyID int) ([]*entity.Subscription, error)
}
