package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/properties")

	// === Public Routes ===
	group.GET("/available", h.FindAvailable)
	group.GET("/:id", h.Get)

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("/mine", h.ListMine)
		authed.PATCH("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
		authed.GET("/:id/bookings", h.ListBookings)
	}
}
