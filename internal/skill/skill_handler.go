package skill

import (
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
	l := zap.L().Named("skill.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("skill.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeResult(c *gin.Context, message string, payload any, err error) {
	if err != nil {
		appErr := apperror.From(err)
		h.logger.Warn("skill request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.NamedError("cause", appErr.Err),
		)
	}
	response.Result(c, message, payload, err)
}

func (h *Handler) GetAll(c *gin.Context) {
	var q ListSkillsQuery
	if err := request.BindQuery(c, &q); err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), q)
	h.writeResult(c, "Skills retrieved successfully", page, err)
}

func (h *Handler) GetById(c *gin.Context) {
	id, err := request.ParseID(c, "id", "skill")
	if err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	h.writeResult(c, "Skill retrieved successfully", resp, err)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateSkillRequest
	if err := request.BindJSON(c, &req); err != nil {
		h.writeResult(c, "", nil, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	h.writeResult(c, "Skill created successfully", resp, err)
}
