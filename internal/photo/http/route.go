package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.ServePhoto)
		photos.GET("/:id/thumbnail", h.ServeThumbnail)
	}

	// Photo listing and upload live under the owning property.
	properties := g.Group("/properties")
	{
		properties.GET("/:id/photos", h.ListByProperty)

		authed := properties.Group("")
		authed.Use(authMiddleware)
		{
			authed.POST("/:id/photos", h.Upload)
		}
	}

	// === Authenticated Routes ===
	authedPhotos := g.Group("/photos")
	authedPhotos.Use(authMiddleware)
	{
		authedPhotos.DELETE("/:id", h.Delete)
	}
}
