package domain

import "errors"

// Closed error set for the service. Callers branch with errors.Is instead of
// matching message strings.
var (
	// ErrPropertyNotFound indicates the referenced property does not exist.
	ErrPropertyNotFound = errors.New("property not found")
	// ErrForbidden indicates the caller is not the owner, or an owner
	// attempting to book their own listing.
	ErrForbidden = errors.New("caller is not allowed to perform this action")
	// ErrNotRentable indicates a booking attempt on a property whose type
	// is not "rent".
	ErrNotRentable = errors.New("property is not available for booking")
	// ErrBookingConflict indicates the requested dates overlap the stored booking.
	ErrBookingConflict = errors.New("property is already booked for the specified dates")
	// ErrNotificationFailed indicates the notification publish failed after
	// the mutation itself committed.
	ErrNotificationFailed = errors.New("failed to send notification")
)
