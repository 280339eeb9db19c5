package rbac

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	group := r.Group("/rbac")
	group.Use(middleware.RequireAuthenticated(middleware.JSONDeny))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/roles", handler.Roles)
	}
}
