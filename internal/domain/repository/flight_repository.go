package repository

import (
	"context"
	"time"

	"flightchange-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight operations
type FlightRepository interface {
	// FindByNaturalKey looks up a flight by (route id, departure time,
	// airline id). Returns (nil, nil) when no flight matches.
	FindByNaturalKey(ctx context.Context, routeID uint, departure time.Time, airlineID int) (*entity.Flight, error)
	// PersistBatch saves one import batch in a single transaction:
	// created flights are inserted with store-assigned ids, updated
	// flights are overwritten in place.
	PersistBatch(ctx context.Context, created []*entity.Flight, updated []*entity.Flight) error
	// ListByCorridor returns the flights whose route matches the given
	// origin/destination and whose departure falls within [start, end]
	// inclusive, with Route populated.
	ListByCorridor(ctx context.Context, originCityID, destinationCityID int, start, end time.Time) ([]*entity.Flight, error)
}
