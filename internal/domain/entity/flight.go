package entity

import (
	"time"
)

// Flight represents a scheduled flight on a route. FlightID is a
// store-assigned surrogate; for reconciliation a flight is identified by
// (route id, departure time, airline id).
type Flight struct {
	FlightID      uint
	RouteID       uint
	DepartureTime time.Time
	ArrivalTime   time.Time
	AirlineID     int
	Route         *Route
}

// ApplyFrom overwrites the flight's schedule fields with the incoming
// record's values. The surrogate id and route reference are never touched.
func (f *Flight) ApplyFrom(in *Flight) {
	f.DepartureTime = in.DepartureTime
	f.ArrivalTime = in.ArrivalTime
	f.AirlineID = in.AirlineID
}
