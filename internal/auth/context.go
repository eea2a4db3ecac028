package auth

import "github.com/gin-gonic/gin"

const (
	ctxKeyCustomerID    = "customerID"
	ctxKeyCustomerEmail = "customerEmail"
)

// GetCustomerID returns the authenticated customer's ID or empty string.
func GetCustomerID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyCustomerID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetCustomerEmail returns the authenticated customer's email or empty string.
func GetCustomerEmail(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyCustomerEmail); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
