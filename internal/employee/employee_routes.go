package employee

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
		return middleware.Authorize(rbacService, rbac.ResourceEmployee, action, middleware.JSONDeny)
	}

	employees := r.Group("/employees")
	{
		employees.GET("", authorize(rbac.ActionRead), h.GetAll)
		employees.POST("", authorize(rbac.ActionCreate), h.Create)
		employees.GET("/:id", authorize(rbac.ActionRead), h.GetById)
		employees.PUT("/:id", authorize(rbac.ActionUpdate), h.Update)
		employees.DELETE("/:id", authorize(rbac.ActionDelete), h.Delete)
	}
}
