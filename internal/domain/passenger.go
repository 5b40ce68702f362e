package domain

import "time"

// Customer is keyed by a sequence-generated surrogate id. The sequence may be
// restarted externally between test runs, so nothing in the service may cache
// or predict customer ids.
type Customer struct {
	ID         int64
	PassportID string
	FirstName  string
	LastName   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Passenger links one customer to one flight. Deleting a passenger leaves
// the customer row in place.
type Passenger struct {
	FlightID   string
	CustomerID int64
	PassportID string
	FirstName  string
	LastName   string
}
