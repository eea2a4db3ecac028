package http

import (
	"time"

	"github.com/rentspot/rental-booking-backend/internal/property"
)

type CreatePropertyRequest struct {
	Name         string  `json:"name" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	Description  string  `json:"description"`
	MinTime      int     `json:"min_time" binding:"required,min=1"`
	MaxTime      int     `json:"max_time" binding:"required,min=1"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gt=0"`
}

// UpdatePropertyRequest is a partial update. Absent fields keep their
// current value.
type UpdatePropertyRequest struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	Description  *string  `json:"description"`
	MinTime      *int     `json:"min_time"`
	MaxTime      *int     `json:"max_time"`
	PricePerHour *float64 `json:"price_per_hour"`
}

type AvailabilityRequest struct {
	StartDate      time.Time `form:"start_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	EndDate        time.Time `form:"end_date" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Name           string    `form:"name"`
	Description    string    `form:"description"`
	Type           string    `form:"type"`
	OrderBy        string    `form:"order_by" binding:"omitempty,oneof=name description type pricePerHour"`
	OrderDirection string    `form:"order_direction" binding:"omitempty,oneof=asc desc"`
}

type PropertyResponse struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customer_id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Description  string     `json:"description"`
	MinTime      int        `json:"min_time"`
	MaxTime      int        `json:"max_time"`
	PricePerHour float64    `json:"price_per_hour"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func NewPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		CustomerID:   p.CustomerID,
		Name:         p.Name,
		Type:         p.Type,
		Description:  p.Description,
		MinTime:      p.MinTime,
		MaxTime:      p.MaxTime,
		PricePerHour: p.PricePerHour,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewPropertyResponses(props []*property.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, NewPropertyResponse(p))
	}
	return out
}
