package usecase

import (
	"time"

	"flightchange-service/internal/domain/entity"
)

const (
	// scheduleOffset is the week-over-week comparison distance.
	scheduleOffset = 7 * 24 * time.Hour
	// matchTolerance is the inclusive allowance when matching a flight to
	// its counterpart one week apart.
	matchTolerance = 30 * time.Minute
)

// ChangeDetectionStrategy classifies flights within one corridor's flight
// set into change events. Implementations are pure: no store access, no
// mutation of the passed set.
type ChangeDetectionStrategy interface {
	Detect(flights []*entity.Flight) []entity.ChangeEvent
}

// hasCounterpart reports whether some flight in the set shares f's airline
// and departs within the tolerance of f's departure shifted by offset.
// The set may include f itself; f can never be its own counterpart since
// that would require it to sit a full week from its own departure.
func hasCounterpart(flights []*entity.Flight, f *entity.Flight, offset time.Duration) bool {
	target := f.DepartureTime.Add(offset)
	for _, g := range flights {
		if g.AirlineID != f.AirlineID {
			continue
		}
		diff := g.DepartureTime.Sub(target)
		if diff < 0 {
			diff = -diff
		}
		if diff <= matchTolerance {
			return true
		}
	}
	return false
}

// NewFlightStrategy flags flights that have no counterpart one week
// earlier: they did not exist on the prior week's schedule.
type NewFlightStrategy struct{}

func (NewFlightStrategy) Detect(flights []*entity.Flight) []entity.ChangeEvent {
	var changes []entity.ChangeEvent
	for _, f := range flights {
		if !hasCounterpart(flights, f, -scheduleOffset) {
			changes = append(changes, entity.NewChangeEvent(f, entity.StatusNew))
		}
	}
	return changes
}

// DiscontinuedFlightStrategy flags flights that have no counterpart one
// week later: they are absent from the following week's schedule.
type DiscontinuedFlightStrategy struct{}

func (DiscontinuedFlightStrategy) Detect(flights []*entity.Flight) []entity.ChangeEvent {
	var changes []entity.ChangeEvent
	for _, f := range flights {
		if !hasCounterpart(flights, f, scheduleOffset) {
			changes = append(changes, entity.NewChangeEvent(f, entity.StatusDiscontinued))
		}
	}
	return changes
}
