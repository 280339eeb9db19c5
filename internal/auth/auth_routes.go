package auth

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, loginLimiter *limiter.Limiter) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.LoginThrottle(loginLimiter, middleware.JSONDeny), handler.Login)
		auth.POST("/register", middleware.RateLimitByIP(0.1, 3), handler.Register)
		auth.GET("/me", middleware.RequireAuthenticated(middleware.JSONDeny), handler.Me)
		auth.POST("/logout", handler.Logout)
	}
}
