package middleware

import (
	"github.com/SukhanRumanov/prac3/internal/auth/gate"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// DenyFunc ends a request the gate refused. Each surface brings its own.
type DenyFunc func(c *gin.Context, err *apperror.AppError)

// JSONDeny answers with the failure envelope.
func JSONDeny(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.Message)
	c.Abort()
}

// Authenticate resolves the caller once per request. It never rejects;
// RequireAuthenticated and Authorize decide.
func Authenticate(g *gate.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := g.Resolve(c.Request.Context(), gate.CredentialFrom(c.Request))
		c.Set(identityKey, id)

		if id.IsAuthenticated() {
			c.Set("user_id", id.UserID)
			ctx := contextutil.WithUserID(c.Request.Context(), id.UserID)
			c.Request = c.Request.WithContext(ctx)
		}

		c.Next()
	}
}

// IdentityFrom returns the identity set by Authenticate, or anonymous.
func IdentityFrom(c *gin.Context) gate.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(gate.Identity); ok {
			return id
		}
	}
	return gate.AnonymousIdentity
}

func RequireAuthenticated(deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).IsAuthenticated() {
			deny(c, apperror.ErrUnauthenticated)
			return
		}
		c.Next()
	}
}

// RequireAdministrator checks the role without consulting the policy.
func RequireAdministrator(deny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.IsAuthenticated() {
			deny(c, apperror.ErrUnauthenticated)
			return
		}
		if !id.IsAdministrator() {
			deny(c, apperror.ErrForbidden)
			return
		}
		c.Next()
	}
}
