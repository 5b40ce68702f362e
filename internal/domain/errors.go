package domain

import "errors"

var (
	// ErrNameMismatch covers both an authoritative name that differs from the
	// caller-supplied one and a passport the authority has no record of. The
	// caller-visible contract does not distinguish the two.
	ErrNameMismatch = errors.New("firstname or lastname is mismatch")

	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found")

	// ErrInvalidInput marks request bodies the caller must correct.
	ErrInvalidInput = errors.New("invalid input")
)
