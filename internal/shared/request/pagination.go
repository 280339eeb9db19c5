package request

import (
	"strconv"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// MaxLimit is the largest page a list query accepts. Pages that need every
// row of a lookup table ask for this many.
const MaxLimit = 1000

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, param, entity string) (uint, error) {
	raw := c.Param(param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.InvalidID(entity)
	}
	return uint(id), nil
}

// BindQuery binds query parameters into dst and maps binding failures onto
// an INVALID_INPUT error.
func BindQuery(c *gin.Context, dst any) error {
	if err := c.ShouldBindQuery(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

// BindJSON is the JSON body counterpart of BindQuery.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

// BindForm binds an HTML form post.
func BindForm(c *gin.Context, dst any) error {
	if err := c.ShouldBind(dst); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}
