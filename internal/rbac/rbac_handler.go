package rbac

import (
	"strings"

	"github.com/SukhanRumanov/prac3/internal/middleware"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Enforce answers whether the caller may perform an action, so clients can
// hide controls they cannot use.
func (h *Handler) Enforce(c *gin.Context) {
	var req EnforceRequest
	if err := request.BindJSON(c, &req); err != nil {
		response.Result(c, "", nil, err)
		return
	}

	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	id := middleware.IdentityFrom(c)
	allowed, err := h.service.Enforce(id.Role(), req.Resource, req.Action)
	if err != nil {
		h.logger.Error("enforce failed", zap.Error(err))
		response.Result(c, "", nil, apperror.ErrInternal)
		return
	}

	response.Success(c, "Permission evaluated", EnforceResponse{
		Role:     id.Role(),
		Resource: req.Resource,
		Action:   req.Action,
		Allowed:  allowed,
	})
}

func (h *Handler) Roles(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	response.Success(c, "Roles retrieved successfully", h.service.RolesFor(id.Role()))
}
