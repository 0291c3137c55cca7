package entity

import (
	"time"
)

// Route represents a flight corridor on a specific departure date.
// The natural key is (origin city, destination city, departure date);
// RouteID is a store-assigned surrogate.
type Route struct {
	RouteID           uint
	OriginCityID      int
	DestinationCityID int
	DepartureDate     time.Time
}

// RouteKey is the natural key used to reconcile imported routes against
// stored ones. The departure date is carried as UTC unix seconds so that
// location and monotonic-clock differences never split equal keys.
type RouteKey struct {
	OriginCityID      int
	DestinationCityID int
	DepartureDate     int64
}

// Key returns the route's natural key.
func (r *Route) Key() RouteKey {
	return RouteKey{
		OriginCityID:      r.OriginCityID,
		DestinationCityID: r.DestinationCityID,
		DepartureDate:     r.DepartureDate.UTC().Unix(),
	}
}

// ApplyFrom overwrites the route's fields with the incoming record's values.
// Last write in file order wins; the surrogate id is never touched.
func (r *Route) ApplyFrom(in *Route) {
	r.OriginCityID = in.OriginCityID
	r.DestinationCityID = in.DestinationCityID
	r.DepartureDate = in.DepartureDate
}
