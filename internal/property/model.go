package property

import (
	"net/http"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "property not found")
	ErrNotOwnedByCustomer = apperror.New(http.StatusForbidden, "property does not belong to customer")
	ErrHasActiveBookings  = apperror.New(http.StatusConflict, "property has a booking in progress")
	ErrInvalidTime        = apperror.New(http.StatusBadRequest, "min time must be lower than max time")
	ErrInvalidMinTime     = apperror.New(http.StatusBadRequest, "min time must be at least one hour")
	ErrInvalidPrice       = apperror.New(http.StatusBadRequest, "price per hour must be greater than zero")
	ErrInvalidDateRange   = apperror.New(http.StatusBadRequest, "start date must be before end date")
	ErrEmptyName          = apperror.New(http.StatusBadRequest, "name cannot be empty")
)

// Property is a rentable unit (a car, a house) listed by a customer.
// MinTime and MaxTime bound the duration of a booking, in hours.
type Property struct {
	ID           string
	CustomerID   string // owner, immutable
	Name         string
	Type         string
	Description  string
	MinTime      int
	MaxTime      int
	PricePerHour float64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// SearchFilter defines parameters for searching properties.
// Name, Description and Type are case-insensitive substring matches,
// combined with AND. An empty OrderBy preserves repository order.
type SearchFilter struct {
	Name        string
	Description string
	Type        string
	OrderBy     string // one of: pricePerHour, name, description, type
	OrderDir    string // asc (default) or desc
}
