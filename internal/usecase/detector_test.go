package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightchange-service/internal/domain/entity"
	"flightchange-service/pkg/logger"
)

type stubSubscriptionRepo struct {
	subscriptions []*entity.Subscription
}

func (s *stubSubscriptionRepo) FindByKey(ctx context.Context, agencyID, originCityID, destinationCityID int) (*entity.Subscription, error) {
	for _, sub := range s.subscriptions {
		if sub.AgencyID == agencyID && sub.OriginCityID == originCityID && sub.DestinationCityID == destinationCityID {
			return sub, nil
		}
	}
	return nil, nil
}

func (s *stubSubscriptionRepo) PersistBatch(ctx context.Context, created, updated []*entity.Subscription) error {
	s.subscriptions = append(s.subscriptions, created...)
	return nil
}

func (s *stubSubscriptionRepo) ListByAgency(ctx context.Context, agencyID int) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, sub := range s.subscriptions {
		if sub.AgencyID == agencyID {
			out = append(out, sub)
		}
	}
	return out, nil
}

type stubFlightRepo struct {
	flights []*entity.Flight
}

func (s *stubFlightRepo) FindByNaturalKey(ctx context.Context, routeID uint, departure time.Time, airlineID int) (*entity.Flight, error) {
	for _, f := range s.flights {
		if f.RouteID == routeID && f.DepartureTime.Equal(departure) && f.AirlineID == airlineID {
			return f, nil
		}
	}
	return nil, nil
}

func (s *stubFlightRepo) PersistBatch(ctx context.Context, created, updated []*entity.Flight) error {
	s.flights = append(s.flights, created...)
	return nil
}

func (s *stubFlightRepo) ListByCorridor(ctx context.Context, originCityID, destinationCityID int, start, end time.Time) ([]*entity.Flight, error) {
	var out []*entity.Flight
	for _, f := range s.flights {
		if f.Route == nil || f.Route.OriginCityID != originCityID || f.Route.DestinationCityID != destinationCityID {
			continue
		}
		if f.DepartureTime.Before(start) || f.DepartureTime.After(end) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func defaultStrategies() []ChangeDetectionStrategy {
	return []ChangeDetectionStrategy{
		NewFlightStrategy{},
		DiscontinuedFlightStrategy{},
	}
}

func TestDetectChanges_WeeklyScheduleScenario(t *testing.T) {
	subs := &stubSubscriptionRepo{
		subscriptions: []*entity.Subscription{
			{AgencyID: 1, OriginCityID: 1, DestinationCityID: 2},
		},
	}
	flights := &stubFlightRepo{
		flights: []*entity.Flight{
			testFlight(1, 1, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
			testFlight(2, 1, time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC)),
			testFlight(3, 1, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
	}

	detector := NewChangeDetector(subs, flights, defaultStrategies(), logger.NewNopLogger(), nil)

	result, err := detector.DetectChanges(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		1)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, uint(1), result[0].FlightID)
	assert.Equal(t, entity.StatusNew, result[0].Status)
	assert.Equal(t, uint(3), result[1].FlightID)
	assert.Equal(t, entity.StatusDiscontinued, result[1].Status)
}

func TestDetectChanges_WindowBoundsAreInclusive(t *testing.T) {
	subs := &stubSubscriptionRepo{
		subscriptions: []*entity.Subscription{
			{AgencyID: 1, OriginCityID: 1, DestinationCityID: 2},
		},
	}
	flights := &stubFlightRepo{
		flights: []*entity.Flight{
			testFlight(1, 1, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	detector := NewChangeDetector(subs, flights, defaultStrategies(), logger.NewNopLogger(), nil)

	// The single flight departs exactly at the window start.
	result, err := detector.DetectChanges(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		1)
	require.NoError(t, err)
	require.Len(t, result, 2)
}

func TestDetectChanges_NoSubscriptionsYieldsEmptyResult(t *testing.T) {
	subs := &stubSubscriptionRepo{}
	flights := &stubFlightRepo{
		flights: []*entity.Flight{
			testFlight(1, 1, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	detector := NewChangeDetector(subs, flights, defaultStrategies(), logger.NewNopLogger(), nil)

	result, err := detector.DetectChanges(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		1)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDetectChanges_CorridorOutsideSubscriptionIgnored(t *testing.T) {
	otherRoute := &entity.Route{RouteID: 2, OriginCityID: 3, DestinationCityID: 4}
	offCorridor := testFlight(9, 1, time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC))
	offCorridor.RouteID = otherRoute.RouteID
	offCorridor.Route = otherRoute

	subs := &stubSubscriptionRepo{
		subscriptions: []*entity.Subscription{
			{AgencyID: 1, OriginCityID: 1, DestinationCityID: 2},
		},
	}
	flights := &stubFlightRepo{flights: []*entity.Flight{offCorridor}}

	detector := NewChangeDetector(subs, flights, defaultStrategies(), logger.NewNopLogger(), nil)

	result, err := detector.DetectChanges(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		1)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestDetectChanges_ResultsKeepSubscriptionThenStrategyOrder(t *testing.T) {
	routeA := &entity.Route{RouteID: 1, OriginCityID: 1, DestinationCityID: 2}
	routeB := &entity.Route{RouteID: 2, OriginCityID: 5, DestinationCityID: 6}

	flightOn := func(id uint, r *entity.Route, day int) *entity.Flight {
		return &entity.Flight{
			FlightID:      id,
			RouteID:       r.RouteID,
			DepartureTime: time.Date(2023, 1, day, 0, 0, 0, 0, time.UTC),
			ArrivalTime:   time.Date(2023, 1, day, 2, 0, 0, 0, time.UTC),
			AirlineID:     1,
			Route:         r,
		}
	}

	subs := &stubSubscriptionRepo{
		subscriptions: []*entity.Subscription{
			{AgencyID: 1, OriginCityID: 1, DestinationCityID: 2},
			{AgencyID: 1, OriginCityID: 5, DestinationCityID: 6},
		},
	}
	// One lone flight per corridor: each is both new and discontinued.
	flights := &stubFlightRepo{
		flights: []*entity.Flight{
			flightOn(1, routeA, 10),
			flightOn(2, routeB, 11),
		},
	}

	detector := NewChangeDetector(subs, flights, defaultStrategies(), logger.NewNopLogger(), nil)

	result, err := detector.DetectChanges(context.Background(),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
		1)
	require.NoError(t, err)

	require.Len(t, result, 4)
	// First subscription's events, new before discontinued, then the second's.
	assert.Equal(t, uint(1), result[0].FlightID)
	assert.Equal(t, entity.StatusNew, result[0].Status)
	assert.Equal(t, uint(1), result[1].FlightID)
	assert.Equal(t, entity.StatusDiscontinued, result[1].Status)
	assert.Equal(t, uint(2), result[2].FlightID)
	assert.Equal(t, entity.StatusNew, result[2].Status)
	assert.Equal(t, uint(2), result[3].FlightID)
	assert.Equal(t, entity.StatusDiscontinued, result[3].Status)
}
