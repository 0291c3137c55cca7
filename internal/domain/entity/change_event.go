package entity

import (
	"time"
)

// ChangeStatus tags the kind of schedule change a flight represents.
type ChangeStatus string

const (
	StatusNew          ChangeStatus = "New"
	StatusDiscontinued ChangeStatus = "Discontinued"
)

// ChangeEvent is a detected schedule change for a single flight. It is
// derived, never persisted, and immutable once built.
type ChangeEvent struct {
	FlightID          uint
	OriginCityID      int
	DestinationCityID int
	DepartureTime     time.Time
	ArrivalTime       time.Time
	AirlineID         int
	Status            ChangeStatus
}

// NewChangeEvent builds a change event from a flight joined with its route.
// The flight's Route must be populated.
func NewChangeEvent(f *Flight, status ChangeStatus) ChangeEvent {
	return ChangeEvent{
		FlightID:          f.FlightID,
		OriginCityID:      f.Route.OriginCityID,
		DestinationCityID: f.Route.DestinationCityID,
		DepartureTime:     f.DepartureTime,
		ArrivalTime:       f.ArrivalTime,
		AirlineID:         f.AirlineID,
		Status:            status,
	}
}
