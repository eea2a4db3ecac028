package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, idempotencyMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	if idempotencyMiddleware != nil {
		group.Use(idempotencyMiddleware)
	}
	{
		group.POST("", h.Create)
		group.GET("", h.ListMine)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Edit)
		group.PATCH("/:id/cancel", h.Cancel)
		group.DELETE("/:id", h.Delete)
	}
}
