package status

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
	statuses := r.Group("/statuses")
	{
		statuses.GET("", middleware.Authorize(rbacService, rbac.ResourceStatus, rbac.ActionRead, middleware.JSONDeny), h.GetAll)
		statuses.POST("", middleware.Authorize(rbacService, rbac.ResourceStatus, rbac.ActionCreate, middleware.JSONDeny), h.Create)
		statuses.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceStatus, rbac.ActionRead, middleware.JSONDeny), h.GetById)
	}
}
