package domain

import "time"

// Flight rows are seeded once by the schema and never mutated by booking
// operations.
type Flight struct {
	ID               string
	DepartureAirport string
	ArrivalAirport   string
	DepartureTime    time.Time
	ArrivalTime      time.Time
	DepartureTZ      string
	ArrivalTZ        string
	CreatedAt        time.Time
}

// LocalDepartureTime converts the stored UTC departure instant into the
// departure airport's zone. Offsets come from the timezone database, so the
// same zone can yield different offsets across DST boundaries.
func (f *Flight) LocalDepartureTime() (time.Time, error) {
	loc, err := time.LoadLocation(f.DepartureTZ)
	if err != nil {
		return time.Time{}, err
	}
	return f.DepartureTime.In(loc), nil
}

// LocalArrivalTime converts the stored UTC arrival instant into the arrival
// airport's zone.
func (f *Flight) LocalArrivalTime() (time.Time, error) {
	loc, err := time.LoadLocation(f.ArrivalTZ)
	if err != nil {
		return time.Time{}, err
	}
	return f.ArrivalTime.In(loc), nil
}
