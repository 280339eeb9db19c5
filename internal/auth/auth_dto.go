package auth

import (
	"time"

	"github.com/SukhanRumanov/prac3/internal/user"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type RegisterRequest struct {
	Username        string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" form:"email" binding:"required,email,max=100"`
	Password        string `json:"password" form:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresAt   time.Time         `json:"expires_at"`
	User        user.UserResponse `json:"user"`
}
