package web

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SukhanRumanov/prac3/internal/auth"
	"github.com/SukhanRumanov/prac3/internal/auth/gate"
	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/skill"
	"github.com/SukhanRumanov/prac3/internal/status"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginPath = "/web/login"
	homePath  = "/web/"
)

type Services struct {
	Auth        auth.Service
	Departments department.Service
	Positions   position.Service
	Employees   employee.Service
	Statuses    status.Service
	Skills      skill.Service
}

type Handler struct {
	svc     Services
	cookies auth.CookieConfig
	logger  *zap.Logger
}

func NewHandler(services Services, cookies auth.CookieConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("web.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("web.handler")
	}
	return &Handler{svc: services, cookies: cookies, logger: l}
}

type pageData struct {
	Title string
	User  gate.Identity
	Error string
	Data  any
}

func (h *Handler) render(c *gin.Context, name, title string, data any) {
	c.HTML(http.StatusOK, name, pageData{
		Title: title,
		User:  middleware.IdentityFrom(c),
		Error: c.Query("error"),
		Data:  data,
	})
}

// redirectError sends the browser back to path with the failure message.
func (h *Handler) redirectError(c *gin.Context, path string, err error) {
	appErr := apperror.From(err)
	h.logger.Warn("web request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("code", appErr.Code),
		zap.NamedError("cause", appErr.Err),
	)
	c.Redirect(http.StatusSeeOther, path+"?error="+url.QueryEscape(appErr.Message))
}

// Deny is the web counterpart of middleware.JSONDeny: anonymous callers go
// to the login page, everybody else back to the start page with the reason.
func Deny(c *gin.Context, err *apperror.AppError) {
	switch err.Code {
	case apperror.CodeUnauthenticated:
		c.Redirect(http.StatusSeeOther, loginPath)
	case apperror.CodeTooManyRequests:
		c.Redirect(http.StatusSeeOther, loginPath+"?error="+url.QueryEscape(err.Message))
	default:
		c.Redirect(http.StatusSeeOther, homePath+"?error="+url.QueryEscape(err.Message))
	}
	c.Abort()
}

// HTMLRecovery renders the error page after a panic.
func HTMLRecovery(c *gin.Context, _ any) {
	c.HTML(http.StatusInternalServerError, "error.html", pageData{
		Title: "Something went wrong",
		User:  middleware.IdentityFrom(c),
		Error: apperror.ErrInternal.Message,
	})
	c.Abort()
}

type lookups struct {
	Departments []department.DepartmentResponse
	Positions   []position.PositionResponse
	Statuses    []status.StatusResponse
	Skills      []skill.SkillResponse
}

// loadLookups fetches the dropdown contents of the employee forms.
func (h *Handler) loadLookups(ctx context.Context) (lookups, error) {
	var l lookups

	depts, err := h.svc.Departments.List(ctx, department.ListDepartmentsQuery{Limit: request.MaxLimit})
	if err != nil {
		return l, err
	}
	positions, err := h.svc.Positions.List(ctx, position.ListPositionsQuery{Limit: request.MaxLimit})
	if err != nil {
		return l, err
	}
	statuses, err := h.svc.Statuses.List(ctx, status.ListStatusesQuery{Limit: request.MaxLimit})
	if err != nil {
		return l, err
	}
	skills, err := h.svc.Skills.List(ctx, skill.ListSkillsQuery{Limit: request.MaxLimit})
	if err != nil {
		return l, err
	}

	l.Departments, _ = depts.Items.([]department.DepartmentResponse)
	l.Positions, _ = positions.Items.([]position.PositionResponse)
	l.Statuses, _ = statuses.Items.([]status.StatusResponse)
	l.Skills, _ = skills.Items.([]skill.SkillResponse)
	return l, nil
}
