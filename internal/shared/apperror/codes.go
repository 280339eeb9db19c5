package apperror

const (
	// Client errors
	CodeInvalidInput     = "INVALID_INPUT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeDependencyBlock  = "DEPENDENCY_BLOCK"
	CodeTooManyRequests  = "TOO_MANY_REQUESTS"

	// Server errors
	CodeInternalError = "INTERNAL_ERROR"
)
