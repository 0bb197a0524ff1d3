package domain

import "time"

// HasBookingConflict reports whether the requested [from, to] interval
// overlaps the property's stored booking interval. Both intervals are closed:
// sharing a single day counts as a conflict. Returns false when the property
// is not currently booked.
//
// Only the single stored interval is checked — the model holds at most one
// active booking per property.
func HasBookingConflict(p *Property, from, to time.Time) bool {
	if !p.IsBooked || p.BookedFrom == nil || p.BookedTo == nil {
		return false
	}
	bookedFrom := *p.BookedFrom
	bookedTo := *p.BookedTo

	switch {
	case within(from, bookedFrom, bookedTo): // requested start falls inside
		return true
	case within(to, bookedFrom, bookedTo): // requested end falls inside
		return true
	case !from.After(bookedFrom) && !to.Before(bookedTo): // request contains the booking
		return true
	}
	return false
}

// within reports whether t lies in the closed interval [lo, hi].
func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}
