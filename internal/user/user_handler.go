package user

import (
	"context"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/request"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("user.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeResult(c *gin.Context, message string, payload any, err error) {
	if err != nil {
		appErr := apperror.From(err)
		h.logger.Warn("user request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.NamedError("cause", appErr.Err),
		)
	}
	response.Result(c, message, payload, err)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListUsersQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), q)
	h.writeResult(c, "Users retrieved successfully", page, err)
}

func (h *Handler) SetActive(c *gin.Context) {
	h.setFlag(c, h.svc.SetActive)
}

func (h *Handler) SetSuperuser(c *gin.Context) {
	h.setFlag(c, h.svc.SetSuperuser)
}

func (h *Handler) setFlag(c *gin.Context, apply func(ctx context.Context, id uint, value bool) (UserResponse, error)) {
	id, err := request.ParseID(c, "id", "user")
	if err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	var body SetFlagRequest
	if err := request.BindJSON(c, &body); err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	resp, err := apply(c.Request.Context(), id, *body.Value)
	h.writeResult(c, "User updated successfully", resp, err)
}
