package customer

import (
	"net/http"
	"time"

	"github.com/rentspot/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "customer not found")
	ErrAlreadyExists      = apperror.New(http.StatusConflict, "customer with same email or cpf already exists")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// Customer is an account that can list properties and book them.
type Customer struct {
	ID           string
	Name         string
	Email        string
	CPF          string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
