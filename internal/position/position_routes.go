package position

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	authorize := func(action string) gin.HandlerFunc {
		return middleware.Authorize(rbacService, rbac.ResourcePosition, action, middleware.JSONDeny)
	}

	positions := r.Group("/positions")
	{
		positions.GET("", authorize(rbac.ActionRead), h.GetAll)
		positions.POST("", authorize(rbac.ActionCreate), h.Create)
		positions.GET("/:id", authorize(rbac.ActionRead), h.GetById)
		positions.PUT("/:id", authorize(rbac.ActionUpdate), h.Update)
		positions.DELETE("/:id", authorize(rbac.ActionDelete), h.Delete)
	}
}
