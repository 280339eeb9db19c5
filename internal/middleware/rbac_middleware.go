package middleware

import (
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(role, resource, action string) (bool, error)
}

// Authorize lets the request through when the caller's role may perform
// action on resource.
func Authorize(service RBACService, resource, action string, deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.IsAuthenticated() {
			deny(c, apperror.ErrUnauthenticated)
			return
		}

		allowed, err := service.Enforce(id.Role(), resource, action)
		if err != nil {
			contextutil.GetLogger(c.Request.Context(), nil).Error("authorization check failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			deny(c, apperror.ErrInternal)
			return
		}

		if !allowed {
			deny(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
