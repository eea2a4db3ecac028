package http

import (
	"time"

	"github.com/rentspot/rental-booking-backend/internal/booking"
	"github.com/rentspot/rental-booking-backend/internal/property"
)

type CreateBookingRequest struct {
	PropertyID string    `json:"property_id" binding:"required,uuid"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
}

// EditBookingRequest updates the booking interval. Absent fields keep
// their current value.
type EditBookingRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// PropertyTag is a brief representation of the booked property.
type PropertyTag struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	PricePerHour float64 `json:"price_per_hour"`
}

type BookingResponse struct {
	ID         string      `json:"id"`
	Property   PropertyTag `json:"property"`
	StartDate  time.Time   `json:"start_date"`
	EndDate    time.Time   `json:"end_date"`
	FinalPrice float64     `json:"final_price"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  *time.Time  `json:"updated_at"`
}

// NewBookingResponse shapes a booking for the API. prop may be nil when
// the property has since been deleted.
func NewBookingResponse(b *booking.Booking, prop *property.Property) BookingResponse {
	tag := PropertyTag{ID: b.PropertyID}
	if prop != nil {
		tag.Name = prop.Name
		tag.Type = prop.Type
		tag.PricePerHour = prop.PricePerHour
	}

	return BookingResponse{
		ID:         b.ID,
		Property:   tag,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		FinalPrice: b.FinalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
