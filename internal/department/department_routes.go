package department

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
		return middleware.Authorize(rbacService, rbac.ResourceDepartment, action, middleware.JSONDeny)
	}

	departments := r.Group("/departments")
	{
		departments.GET("", authorize(rbac.ActionRead), h.GetAll)
		departments.POST("", authorize(rbac.ActionCreate), h.Create)
		departments.GET("/:id", authorize(rbac.ActionRead), h.GetById)
		departments.PUT("/:id", authorize(rbac.ActionUpdate), h.Update)
		departments.DELETE("/:id", authorize(rbac.ActionDelete), h.Delete)
	}
}
