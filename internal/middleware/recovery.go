package middleware

import (
	"net/http"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryHandler writes the response after a panic was caught.
type RecoveryHandler func(c *gin.Context, recovered any)

func Recover(handle RecoveryHandler) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		contextutil.GetLogger(c.Request.Context(), nil).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		handle(c, recovered)
	})
}

// JSONRecovery answers with the generic failure envelope.
func JSONRecovery(c *gin.Context, _ any) {
	response.Abort(c, http.StatusInternalServerError, apperror.ErrInternal)
}
