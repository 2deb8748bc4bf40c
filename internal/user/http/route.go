package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, actorMiddleware gin.HandlerFunc) {
	g.POST("/auth/login", h.Login)

	group := g.Group("/users")
	group.POST("", h.Create)

	authed := group.Group("")
	authed.Use(actorMiddleware)
	{
		authed.GET("", h.List)
		authed.GET("/:id", h.Get)
		authed.PATCH("/:id", h.Update)
		authed.DELETE("/:id", h.Delete)
	}
}
