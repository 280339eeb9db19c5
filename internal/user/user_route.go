package user

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	users := r.Group("/users")
	{
		users.GET("",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionRead, middleware.JSONDeny),
			handler.GetAll,
		)

		users.PATCH("/:id/active",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate, middleware.JSONDeny),
			handler.SetActive,
		)

		users.PATCH("/:id/superuser",
			middleware.Authorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate, middleware.JSONDeny),
			handler.SetSuperuser,
		)
	}
}
