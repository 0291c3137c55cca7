package usecase

import (
	"context"
	"time"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/internal/domain/repository"
	"flightchange-service/pkg/logger"
	"flightchange-service/pkg/metrics"
)

// ChangeDetector runs every registered strategy against each of an
// agency's subscriptions and concatenates the results
type ChangeDetector struct {
	subscriptionRepo repository.SubscriptionRepository
	flightRepo       repository.FlightRepository
	strategies       []ChangeDetectionStrategy
	logger           logger.Logger
	metrics          *metrics.Metrics
}

// NewChangeDetector creates a new change detector. Strategies run in the
// order given; results keep subscription order, then strategy order, then
// strategy yield order.
func NewChangeDetector(
	subscriptionRepo repository.SubscriptionRepository,
	flightRepo repository.FlightRepository,
	strategies []ChangeDetectionStrategy,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ChangeDetector {
	return &ChangeDetector{
		subscriptionRepo: subscriptionRepo,
		flightRepo:       flightRepo,
		strategies:       strategies,
		logger:           logger,
		metrics:          metrics,
	}
}

// DetectChanges produces the ordered list of schedule changes for the
// agency across the inclusive [start, end] departure window
func (d *ChangeDetector) DetectChanges(ctx context.Context, start, end time.Time, agencyID int) ([]entity.ChangeEvent, error) {
	subscriptions, err := d.subscriptionRepo.ListByAgency(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	d.logger.Info("Detecting schedule changes",
		"agencyId", agencyID,
		"subscriptions", len(subscriptions),
		"start", start.Format("2006-01-02"),
		"end", end.Format("2006-01-02"))

	var changes []entity.ChangeEvent
	for _, sub := range subscriptions {
		flights, err := d.flightRepo.ListByCorridor(ctx, sub.OriginCityID, sub.DestinationCityID, start, end)
		if err != nil {
			return nil, err
		}

		for _, strategy := range d.strategies {
			detected := strategy.Detect(flights)
			for _, c := range detected {
				if d.metrics != nil {
					d.metrics.ChangesDetected.WithLabelValues(string(c.Status)).Inc()
				}
			}
			changes = append(changes, detected...)
		}
	}

	d.logger.Info("Detection finished", "agencyId", agencyID, "changes", len(changes))
	return changes, nil
}
