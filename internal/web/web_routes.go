package web

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

func RegisterRoutes(
	r *gin.Engine,
	h *Handler,
	rbacService rbac.Service,
	loginLimiter *limiter.Limiter,
) {
	web := r.Group("/web")
	web.Use(middleware.Recover(HTMLRecovery))

	web.GET("/login", h.LoginPage)
	web.POST("/login", middleware.LoginThrottle(loginLimiter, Deny), h.Login)
	web.GET("/register", h.RegisterPage)
	web.POST("/register", middleware.RateLimitByIP(0.1, 3), h.Register)
	web.GET("/logout", h.Logout)
	web.POST("/logout", h.Logout)

	pages := web.Group("")
	pages.Use(middleware.RequireAuthenticated(Deny))
	{
		pages.GET("/", h.Index)
		pages.GET("/employees", h.Employees)
		pages.GET("/departments", h.Departments)
		pages.GET("/positions", h.Positions)
	}

	authorize := func(resource, action string) gin.HandlerFunc {
		return middleware.Authorize(rbacService, resource, action, Deny)
	}

	edit := web.Group("/edit")
	edit.Use(middleware.RequireAdministrator(Deny))
	{
		edit.GET("", h.EditIndex)

		edit.GET("/employees", h.EditEmployees)
		edit.POST("/employees/add", authorize(rbac.ResourceEmployee, rbac.ActionCreate), h.AddEmployee)
		edit.POST("/employees/update/:id", authorize(rbac.ResourceEmployee, rbac.ActionUpdate), h.UpdateEmployee)
		edit.POST("/employees/delete/:id", authorize(rbac.ResourceEmployee, rbac.ActionDelete), h.DeleteEmployee)

		edit.GET("/departments", h.EditDepartments)
		edit.POST("/departments/add", authorize(rbac.ResourceDepartment, rbac.ActionCreate), h.AddDepartment)
		edit.POST("/departments/update/:id", authorize(rbac.ResourceDepartment, rbac.ActionUpdate), h.UpdateDepartment)
		edit.POST("/departments/delete/:id", authorize(rbac.ResourceDepartment, rbac.ActionDelete), h.DeleteDepartment)

		edit.GET("/positions", h.EditPositions)
		edit.POST("/positions/add", authorize(rbac.ResourcePosition, rbac.ActionCreate), h.AddPosition)
		edit.POST("/positions/update/:id", authorize(rbac.ResourcePosition, rbac.ActionUpdate), h.UpdatePosition)
		edit.POST("/positions/delete/:id", authorize(rbac.ResourcePosition, rbac.ActionDelete), h.DeletePosition)
	}
}
