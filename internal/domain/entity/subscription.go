package entity

// Subscription represents an agency's interest in a corridor, irrespective
// of departure date. The composite key (agency, origin, destination) is the
// primary key; there is no surrogate id.
type Subscription struct {
	AgencyID          int
	OriginCityID      int
	DestinationCityID int
}

// SubscriptionKey is the composite key of a subscription.
type SubscriptionKey struct {
	AgencyID          int
	OriginCityID      int
	DestinationCityID int
}

// Key returns the subscription's composite key.
func (s *Subscription) Key() SubscriptionKey {
	return SubscriptionKey{
		AgencyID:          s.AgencyID,
		OriginCityID:      s.OriginCityID,
		DestinationCityID: s.DestinationCityID,
	}
}

// ApplyFrom overwrites the subscription's fields with the incoming record's
// values. All fields are part of the key, so this is an overwrite with
// identical values; it exists so updates follow the same explicit-copy
// pattern as the other entities.
func (s *Subscription) ApplyFrom(in *Subscription) {
	s.AgencyID = in.AgencyID
	s.OriginCityID = in.OriginCityID
	s.DestinationCityID = in.DestinationCityID
}
