package booking

import (
	"context"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/property"
)

// Admission is the validated, priced outcome of admitting a candidate
// interval against a property.
type Admission struct {
	DurationHours float64
	FinalPrice    float64
}

// ConflictFunc tells whether a confirmed booking on the property overlaps
// [start, end], ignoring excludeBookingID. Repository.HasOverlap is one.
type ConflictFunc func(ctx context.Context, propertyID string, start, end time.Time, excludeBookingID string) (bool, error)

// Admit decides whether a booking of prop over [start, end] may exist and
// what it costs. It has no side effects beyond the conflict read.
//
// Checks run in a fixed order and the first failure wins: date order,
// then conflict, then duration range, then retroactivity. The same order
// applies to creates and edits so equivalent scenarios fail identically.
func Admit(ctx context.Context, prop *property.Property, start, end, now time.Time, excludeBookingID string, hasConflict ConflictFunc) (*Admission, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}

	conflict, err := hasConflict(ctx, prop.ID, start, end, excludeBookingID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrDateConflict
	}

	hours := end.Sub(start).Hours()
	if hours < float64(prop.MinTime) || hours > float64(prop.MaxTime) {
		return nil, ErrTimeOutsideAllowedRange
	}

	if start.Before(now) || end.Before(now) {
		return nil, ErrRetroactiveDate
	}

	return &Admission{
		DurationHours: hours,
		FinalPrice:    hours * prop.PricePerHour,
	}, nil
}
