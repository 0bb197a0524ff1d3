package domain

import "time"

// PropertyType distinguishes rentable listings from everything else.
// Only "rent" properties can ever be booked.
type PropertyType string

const (
	TypeRent PropertyType = "rent"
	TypeSale PropertyType = "sale"
)

// Property is the single entity managed by this service.
// Note: no `bson` tags here — mapping to storage documents is the
// repository implementation's concern.
type Property struct {
	ID          string // immutable once assigned
	Title       string
	Description string
	Price       float64
	Location    string
	Type        PropertyType
	ImageKey    string // location of the listing image in the blob store
	Owner       string // caller email; the sole authorization principal, immutable
	CreatedAt   time.Time
	UpdatedAt   time.Time
	IsBooked    bool
	BookedFrom  *time.Time // set together with BookedTo, never cleared
	BookedTo    *time.Time
}

// IsBookable reports whether the property may ever transition to booked.
func (p *Property) IsBookable() bool {
	return p.Type == TypeRent
}

// ImageFile carries an uploaded listing image. Data is the base64-encoded
// payload as received from the caller; decoding happens on upload.
type ImageFile struct {
	Name        string
	ContentType string
	Data        string
}

// PropertyUpdate describes a partial update. Each field is an explicit
// present-vs-absent pointer, which removes the truthiness ambiguity of
// loosely-typed update maps.
type PropertyUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Location    *string
	Type        *string
	ImageKey    *string
}

// Changes returns the set of fields to apply, keyed by document field name.
// Price applies whenever present, so an explicit 0 goes through. The string
// fields ignore present-but-empty values — a long-standing asymmetry callers
// depend on, kept as-is.
func (u PropertyUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.Title != nil && *u.Title != "" {
		changes["title"] = *u.Title
	}
	if u.Description != nil && *u.Description != "" {
		changes["description"] = *u.Description
	}
	if u.Price != nil {
		changes["price"] = *u.Price
	}
	if u.Location != nil && *u.Location != "" {
		changes["location"] = *u.Location
	}
	if u.Type != nil && *u.Type != "" {
		changes["type"] = *u.Type
	}
	if u.ImageKey != nil && *u.ImageKey != "" {
		changes["imageKey"] = *u.ImageKey
	}
	return changes
}

// IsEmpty reports whether the update would change nothing.
func (u PropertyUpdate) IsEmpty() bool {
	return len(u.Changes()) == 0
}
