package weather

import "errors"

var (
	// ErrInvalidMonth is returned for identifiers missing from the month table.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrUpstream wraps transport, status and decoding failures from a weather provider.
	ErrUpstream = errors.New("upstream weather provider error")
)
