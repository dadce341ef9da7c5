package errs

import "errors"

// Sentinel errors shared across usecase layers
var (
	// Input validation
	ErrInvalidRange = errors.New("invalid date range")
	ErrPastDate     = errors.New("start date is in the past")

	// Item errors
	ErrItemNotFound = errors.New("item not found")

	// Reservation errors
	ErrRangeUnavailable   = errors.New("range unavailable")
	ErrReservationTimeout = errors.New("reservation lock timeout")

	// Hold errors
	ErrHoldNotFound = errors.New("hold not found")
	ErrHoldExpired  = errors.New("hold expired")
	ErrHoldConflict = errors.New("hold conflict")

	// Operation errors
	ErrPersistenceFailed = errors.New("persistence operation failed")
)
