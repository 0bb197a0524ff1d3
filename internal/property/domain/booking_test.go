package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func bookedProperty(from, to string) *Property {
	f, t := day(from), day(to)
	return &Property{
		ID:         "prop-1",
		Type:       TypeRent,
		IsBooked:   true,
		BookedFrom: &f,
		BookedTo:   &t,
	}
}

func TestHasBookingConflict(t *testing.T) {
	testCases := []struct {
		name     string
		property *Property
		from     string
		to       string
		want     bool
	}{
		{
			name:     "not booked",
			property: &Property{ID: "prop-1", Type: TypeRent, IsBooked: false},
			from:     "2024-01-10",
			to:       "2024-01-20",
			want:     false,
		},
		{
			name:     "overlapping start",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-15",
			to:       "2024-01-25",
			want:     true,
		},
		{
			name:     "overlapping end",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-05",
			to:       "2024-01-12",
			want:     true,
		},
		{
			name:     "request inside booking",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-12",
			to:       "2024-01-18",
			want:     true,
		},
		{
			name:     "request contains booking",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-05",
			to:       "2024-01-25",
			want:     true,
		},
		{
			name:     "identical interval",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-10",
			to:       "2024-01-20",
			want:     true,
		},
		{
			name:     "shared boundary day at end",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-20",
			to:       "2024-01-25",
			want:     true,
		},
		{
			name:     "shared boundary day at start",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-05",
			to:       "2024-01-10",
			want:     true,
		},
		{
			name:     "after booking",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-25",
			to:       "2024-01-30",
			want:     false,
		},
		{
			name:     "before booking",
			property: bookedProperty("2024-01-10", "2024-01-20"),
			from:     "2024-01-01",
			to:       "2024-01-09",
			want:     false,
		},
		{
			name:     "booked flag set but interval missing",
			property: &Property{ID: "prop-1", Type: TypeRent, IsBooked: true},
			from:     "2024-01-10",
			to:       "2024-01-20",
			want:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := HasBookingConflict(tc.property, day(tc.from), day(tc.to))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsBookable(t *testing.T) {
	assert.True(t, (&Property{Type: TypeRent}).IsBookable())
	assert.False(t, (&Property{Type: TypeSale}).IsBookable())
	assert.False(t, (&Property{Type: PropertyType("commercial")}).IsBookable())
}
