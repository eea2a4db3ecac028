package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/booking"
	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
	"github.com/rentspot/rental-booking-backend/internal/pkg/request"
	"github.com/rentspot/rental-booking-backend/internal/pkg/response"
	"github.com/rentspot/rental-booking-backend/internal/property"
)

type Handler struct {
	bookings   booking.Service
	properties property.Service
}

func NewHandler(bookings booking.Service, properties property.Service) *Handler {
	return &Handler{bookings: bookings, properties: properties}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	b, err := h.bookings.Create(c.Request.Context(), booking.CreateRequest{
		CustomerID: auth.GetCustomerID(c),
		PropertyID: body.PropertyID,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"booking_id":  b.ID,
		"final_price": b.FinalPrice,
		"status":      string(b.Status),
	})
}

// ListMine returns the authenticated customer's bookings, newest first,
// each tagged with a brief view of the booked property.
func (h *Handler) ListMine(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid query parameters"))
		return
	}
	params.Normalize()

	bookings, err := h.bookings.ListByCustomer(c.Request.Context(), auth.GetCustomerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	total := len(bookings)
	items := make([]BookingResponse, 0, params.PageSize)
	for _, b := range paginate(bookings, params) {
		items = append(items, NewBookingResponse(b, h.lookupProperty(c, b.PropertyID)))
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid booking id"))
		return
	}

	b, err := h.bookings.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	prop := h.lookupProperty(c, b.PropertyID)

	// Visible to the renter and to the property owner.
	customerID := auth.GetCustomerID(c)
	if b.CustomerID != customerID && (prop == nil || prop.CustomerID != customerID) {
		response.Error(c, booking.ErrNotOwnedByCustomer)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b, prop))
}

func (h *Handler) Edit(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid booking id"))
		return
	}

	var body EditBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	b, err := h.bookings.Edit(c.Request.Context(), uri.ID, auth.GetCustomerID(c), booking.EditRequest{
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b, h.lookupProperty(c, b.PropertyID)))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid booking id"))
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), uri.ID, auth.GetCustomerID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": string(booking.StatusCanceled)})
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid booking id"))
		return
	}

	if err := h.bookings.Delete(c.Request.Context(), uri.ID, auth.GetCustomerID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// lookupProperty resolves the property for display. A booking may outlive
// its property, so a missing property is not an error here.
func (h *Handler) lookupProperty(c *gin.Context, propertyID string) *property.Property {
	prop, err := h.properties.GetByID(c.Request.Context(), propertyID)
	if err != nil {
		return nil
	}
	return prop
}

func paginate(items []*booking.Booking, params request.ListParams) []*booking.Booking {
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
