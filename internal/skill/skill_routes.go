package skill

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
	skills := r.Group("/skills")
	{
		skills.GET("", middleware.Authorize(rbacService, rbac.ResourceSkill, rbac.ActionRead, middleware.JSONDeny), h.GetAll)
		skills.POST("", middleware.Authorize(rbacService, rbac.ResourceSkill, rbac.ActionCreate, middleware.JSONDeny), h.Create)
		skills.GET("/:id", middleware.Authorize(rbacService, rbac.ResourceSkill, rbac.ActionRead, middleware.JSONDeny), h.GetById)
	}
}
