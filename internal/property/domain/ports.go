package domain

import (
	"context"
	"time"
)

// PropertyRepository is the record-store port. Update, Delete and Book are
// conditional writes: the ownership / booking precondition is part of the
// store-side filter, so the check-then-write race of a naive read-modify-write
// cannot slip through.
type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, id string) (*Property, error)
	FindAll(ctx context.Context) ([]*Property, error)
	// UpdateFields applies the partial update only if the record exists and
	// is owned by owner. Returns ErrPropertyNotFound or ErrForbidden otherwise.
	UpdateFields(ctx context.Context, id, owner string, update PropertyUpdate) error
	// Delete removes the record only if it is owned by owner.
	Delete(ctx context.Context, id, owner string) error
	// Book sets the booking fields only if the stored state still permits the
	// interval (not booked, or booked without overlap). Returns
	// ErrBookingConflict when a concurrent booking got there first.
	Book(ctx context.Context, id string, from, to time.Time) error
}

// PropertyCache is a read-through cache for point lookups. A (nil, nil)
// return is a miss.
type PropertyCache interface {
	Get(ctx context.Context, id string) (*Property, error)
	Set(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
}

// BlobStorage is the blob-store port. Upload writes raw bytes under objectKey
// and returns the store-assigned location reference.
type BlobStorage interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (string, error)
}

// NotificationPublisher is the notification-channel port. Messages for the
// same propertyID are delivered in order relative to each other.
type NotificationPublisher interface {
	Publish(ctx context.Context, propertyID, message string) error
}

// EmailSender delivers plain transactional mail. Implementations may be nil
// in wiring; callers treat delivery as best-effort.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}
