package response

import (
	"net/http"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// Envelope is the single response shape of the JSON API.
type Envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Payload any    `json:"payload"`
}

// Page is the payload of every list operation.
type Page struct {
	Items any   `json:"items"`
	Total int64 `json:"total"`
	Skip  int   `json:"skip"`
	Limit int   `json:"limit"`
}

func NewPage(items any, total int64, skip, limit int) Page {
	return Page{
		Items: items,
		Total: total,
		Skip:  skip,
		Limit: limit,
	}
}

func Success(c *gin.Context, message string, payload any) {
	c.JSON(http.StatusOK, Envelope{
		Error:   false,
		Message: message,
		Payload: payload,
	})
}

func Error(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{
		Error:   true,
		Message: message,
		Payload: nil,
	})
}

// Abort writes a failure envelope with the given status and stops the chain.
func Abort(c *gin.Context, status int, err *apperror.AppError) {
	c.AbortWithStatusJSON(status, Envelope{
		Error:   true,
		Message: err.Message,
		Payload: nil,
	})
}

// Result maps a service (payload, error) pair onto the envelope.
func Result(c *gin.Context, message string, payload any, err error) {
	if err != nil {
		Error(c, apperror.From(err).Message)
		return
	}
	Success(c, message, payload)
}
