package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/booking"
	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
	"github.com/rentspot/rental-booking-backend/internal/pkg/request"
	"github.com/rentspot/rental-booking-backend/internal/pkg/response"
	"github.com/rentspot/rental-booking-backend/internal/property"
)

type Handler struct {
	properties property.Service
	bookings   booking.Service
}

func NewHandler(properties property.Service, bookings booking.Service) *Handler {
	return &Handler{properties: properties, bookings: bookings}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	p, err := h.properties.Create(c.Request.Context(), property.CreateRequest{
		CustomerID:   auth.GetCustomerID(c),
		Name:         body.Name,
		Type:         body.Type,
		Description:  body.Description,
		MinTime:      body.MinTime,
		MaxTime:      body.MaxTime,
		PricePerHour: body.PricePerHour,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPropertyResponse(p))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	p, err := h.properties.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

// ListMine returns the properties owned by the authenticated customer.
func (h *Handler) ListMine(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid query parameters"))
		return
	}
	params.Normalize()

	props, err := h.properties.ListByCustomer(c.Request.Context(), auth.GetCustomerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := NewPropertyResponses(props)
	total := len(items)
	items = paginate(items, params)

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

// FindAvailable lists properties with no confirmed booking overlapping
// the requested period, with optional text filters and ordering.
func (h *Handler) FindAvailable(c *gin.Context) {
	var query AvailabilityRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid query parameters"))
		return
	}

	props, err := h.properties.FindAvailable(c.Request.Context(), property.AvailabilityQuery{
		StartDate:      query.StartDate,
		EndDate:        query.EndDate,
		Name:           query.Name,
		Description:    query.Description,
		Type:           query.Type,
		OrderBy:        query.OrderBy,
		OrderDirection: query.OrderDirection,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": NewPropertyResponses(props)})
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	var body UpdatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	p, err := h.properties.Update(c.Request.Context(), uri.ID, auth.GetCustomerID(c), property.UpdateRequest{
		Name:         body.Name,
		Type:         body.Type,
		Description:  body.Description,
		MinTime:      body.MinTime,
		MaxTime:      body.MaxTime,
		PricePerHour: body.PricePerHour,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	if err := h.properties.Delete(c.Request.Context(), uri.ID, auth.GetCustomerID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// OwnerBookingResponse is the owner's view of a booking on their property.
type OwnerBookingResponse struct {
	ID         string     `json:"id"`
	CustomerID string     `json:"customer_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	FinalPrice float64    `json:"final_price"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// ListBookings lets the property owner review the bookings made on one
// of their properties.
func (h *Handler) ListBookings(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid property id"))
		return
	}

	p, err := h.properties.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if p.CustomerID != auth.GetCustomerID(c) {
		response.Error(c, property.ErrNotOwnedByCustomer)
		return
	}

	bookings, err := h.bookings.ListByProperty(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OwnerBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, OwnerBookingResponse{
			ID:         b.ID,
			CustomerID: b.CustomerID,
			StartDate:  b.StartDate,
			EndDate:    b.EndDate,
			FinalPrice: b.FinalPrice,
			Status:     string(b.Status),
			CreatedAt:  b.CreatedAt,
			UpdatedAt:  b.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func paginate(items []PropertyResponse, params request.ListParams) []PropertyResponse {
	start := (params.Page - 1) * params.PageSize
	if start >= len(items) {
		return nil
	}
	end := start + params.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
