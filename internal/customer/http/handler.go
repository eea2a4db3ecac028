package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rentspot/rental-booking-backend/internal/auth"
	"github.com/rentspot/rental-booking-backend/internal/customer"
	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
	"github.com/rentspot/rental-booking-backend/internal/pkg/response"
)

type Handler struct {
	customers  customer.Service
	jwtManager *auth.JWTManager
}

func NewHandler(customers customer.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{customers: customers, jwtManager: jwtManager}
}

func (h *Handler) Register(c *gin.Context) {
	var body RegisterRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	cust, err := h.customers.Register(c.Request.Context(), customer.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		CPF:      body.CPF,
		Phone:    body.Phone,
		Password: body.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCustomerResponse(cust))
}

func (h *Handler) Login(c *gin.Context) {
	var body LoginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	cust, err := h.customers.Login(c.Request.Context(), body.Login, body.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(cust.ID, cust.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"customer":     NewCustomerResponse(cust),
	})
}

func (h *Handler) Me(c *gin.Context) {
	cust, err := h.customers.GetByID(c.Request.Context(), auth.GetCustomerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCustomerResponse(cust))
}

func (h *Handler) UpdateMe(c *gin.Context) {
	var body UpdateMeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid request body"))
		return
	}

	cust, err := h.customers.Update(c.Request.Context(), auth.GetCustomerID(c), customer.UpdateRequest{
		Name:     body.Name,
		Phone:    body.Phone,
		Password: body.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewCustomerResponse(cust))
}

func (h *Handler) DeleteMe(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), auth.GetCustomerID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
