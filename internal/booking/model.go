package booking

import (
	"net/http"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound                = apperror.New(http.StatusNotFound, "booking not found")
	ErrNotOwnedByCustomer      = apperror.New(http.StatusForbidden, "booking does not belong to customer")
	ErrPropertyNotFound        = apperror.New(http.StatusNotFound, "property not found")
	ErrInvalidDateRange        = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrDateConflict            = apperror.New(http.StatusConflict, "property is already booked for the requested dates")
	ErrTimeOutsideAllowedRange = apperror.New(http.StatusBadRequest, "booking duration is outside the range allowed for this property")
	ErrRetroactiveDate         = apperror.New(http.StatusBadRequest, "booking dates cannot be retroactive")
	ErrAlreadyCanceled         = apperror.New(http.StatusConflict, "booking is already canceled")
	ErrEditCanceled            = apperror.New(http.StatusBadRequest, "a canceled booking cannot be edited")
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
)

// Booking is a confirmed or canceled reservation of a property for
// [StartDate, EndDate]. FinalPrice is derived from the duration and the
// property's hourly rate at admission time.
type Booking struct {
	ID         string
	CustomerID string // renter, immutable
	PropertyID string // immutable
	StartDate  time.Time
	EndDate    time.Time
	FinalPrice float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

// Overlaps reports whether [start, end] overlaps this booking's interval.
// Boundaries count: intervals that merely touch at an endpoint conflict,
// so there are no same-instant handoffs.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !start.After(b.EndDate) && !end.Before(b.StartDate)
}

// ActiveAt reports whether the booking is confirmed and in progress at
// the given instant.
func (b *Booking) ActiveAt(at time.Time) bool {
	return b.Status == StatusConfirmed && !at.Before(b.StartDate) && !at.After(b.EndDate)
}
