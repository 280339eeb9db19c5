package auth

import (
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	cookies CookieConfig
	logger  *zap.Logger
}

func NewHandler(s Service, cookies CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookies: cookies, logger: l}
}

func (ctrl *Handler) isWeb(c *gin.Context) bool {
	clientType := request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent"))
	return request.IsWebClient(clientType)
}

func (ctrl *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Result(c, "", nil, err)
		return
	}

	res, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		ctrl.logger.Warn("login failed", zap.String("code", apperror.CodeOf(err)))
		response.Result(c, "", nil, err)
		return
	}

	// Browsers also get the cookie so the web pages see the same session.
	if ctrl.isWeb(c) {
		SetSessionCookie(c, res.AccessToken, res.ExpiresAt, ctrl.cookies)
	}

	response.Success(c, "Login successful", res)
}

func (ctrl *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Result(c, "", nil, err)
		return
	}

	res, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		ctrl.logger.Warn("register failed", zap.String("code", apperror.CodeOf(err)))
		response.Result(c, "", nil, err)
		return
	}

	if ctrl.isWeb(c) {
		SetSessionCookie(c, res.AccessToken, res.ExpiresAt, ctrl.cookies)
	}

	response.Success(c, "User registered successfully", res)
}

func (ctrl *Handler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if !id.IsAuthenticated() {
		response.Result(c, "", nil, apperror.ErrUnauthenticated)
		return
	}

	res, err := ctrl.service.Me(c.Request.Context(), id.UserID)
	response.Result(c, "User retrieved successfully", res, err)
}

func (ctrl *Handler) Logout(c *gin.Context) {
	ClearSessionCookie(c, ctrl.cookies)
	response.Success(c, "Logout successful", nil)
}
