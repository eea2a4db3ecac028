package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	hour := func(h int) time.Time { return day.Add(time.Duration(h) * time.Hour) }

	b := &Booking{StartDate: hour(14), EndDate: hour(16)}

	tests := []struct {
		name  string
		start int
		end   int
		want  bool
	}{
		{"fully inside", 14, 16, true},
		{"overlapping the start", 13, 15, true},
		{"overlapping the end", 15, 17, true},
		{"containing", 13, 17, true},
		{"touching at the end", 16, 18, true},
		{"touching at the start", 12, 14, true},
		{"strictly before", 10, 12, false},
		{"strictly after", 17, 19, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := b.Overlaps(hour(tc.start), hour(tc.end))
			assert.Equal(t, tc.want, got)

			// Overlap is symmetric.
			other := &Booking{StartDate: hour(tc.start), EndDate: hour(tc.end)}
			assert.Equal(t, tc.want, other.Overlaps(b.StartDate, b.EndDate))
		})
	}
}

func TestActiveAt(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	b := &Booking{
		StartDate: day.Add(14 * time.Hour),
		EndDate:   day.Add(16 * time.Hour),
		Status:    StatusConfirmed,
	}

	assert.True(t, b.ActiveAt(day.Add(15*time.Hour)))
	assert.True(t, b.ActiveAt(b.StartDate))
	assert.True(t, b.ActiveAt(b.EndDate))
	assert.False(t, b.ActiveAt(day.Add(13*time.Hour)))
	assert.False(t, b.ActiveAt(day.Add(17*time.Hour)))

	canceled := *b
	canceled.Status = StatusCanceled
	assert.False(t, canceled.ActiveAt(day.Add(15*time.Hour)))
}
