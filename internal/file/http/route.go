package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, actorMiddleware gin.HandlerFunc) {
	items := g.Group("/items")
	items.Use(actorMiddleware)
	{
		items.POST("/:id/image", h.Upload)
		items.GET("/:id/images", h.ListByItem)
	}

	files := g.Group("/files")
	{
		files.GET("/:id", h.Download)
		files.GET("/:id/thumbnail", h.DownloadThumbnail)
		files.DELETE("/:id", actorMiddleware, h.Delete)
	}
}
