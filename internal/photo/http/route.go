package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Photo blobs are public; uploading and deleting require auth.
	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.ServePhoto)
		photos.GET("/:id/thumbnail", h.ServeThumbnail)
		photos.DELETE("/:id", authMiddleware, h.Delete)
	}

	items := g.Group("/items")
	{
		items.GET("/:id/photos", h.ListByItem)
		items.POST("/:id/photos", authMiddleware, h.Upload)
	}
}
