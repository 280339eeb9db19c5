package web

import (
	"net/http"

	"github.com/SukhanRumanov/prac3/internal/auth"
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/shared/request"

	"github.com/gin-gonic/gin"
)

func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.IdentityFrom(c).IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, homePath)
		return
	}
	h.render(c, "login.html", "Log in", nil)
}

func (h *Handler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := request.BindForm(c, &req); err != nil {
		h.redirectError(c, loginPath, err)
		return
	}

	res, err := h.svc.Auth.Login(c.Request.Context(), req)
	if err != nil {
		h.redirectError(c, loginPath, err)
		return
	}

	auth.SetSessionCookie(c, res.AccessToken, res.ExpiresAt, h.cookies)
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *Handler) RegisterPage(c *gin.Context) {
	h.render(c, "register.html", "Register", nil)
}

// Register creates the account and signs the new user in right away.
func (h *Handler) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := request.BindForm(c, &req); err != nil {
		h.redirectError(c, "/web/register", err)
		return
	}

	res, err := h.svc.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.redirectError(c, "/web/register", err)
		return
	}

	auth.SetSessionCookie(c, res.AccessToken, res.ExpiresAt, h.cookies)
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.cookies)
	c.Redirect(http.StatusSeeOther, loginPath)
}
