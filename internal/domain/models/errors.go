package models

import "errors"

// Business errors shared between the stores, services and the HTTP layer.
var (
	// ErrMonthLocked is returned by every write path when the target month
	// has been administratively locked.
	ErrMonthLocked = errors.New("month is locked")

	// ErrDoctorNotFound is returned when a doctor id resolves to nothing for
	// the clinic.
	ErrDoctorNotFound = errors.New("doctor not found")
)
