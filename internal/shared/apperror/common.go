package apperror

import "fmt"

var (
	ErrForbidden = New(
		CodeForbidden,
		"Admin access required",
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
	)

	ErrUnauthenticated = New(
		CodeUnauthenticated,
		"Not authenticated",
	)

	ErrTooManyRequests = New(
		CodeTooManyRequests,
		"Too many requests",
	)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field))
}

func InvalidID(entity string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("Invalid %s ID", entity))
}

// InvalidReference reports a foreign key that points at no row.
func InvalidReference(entity string, id uint) *AppError {
	return New(CodeInvalidReference, fmt.Sprintf("%s with id %d not found", entity, id))
}

func DependencyBlock(entity string, count int64) *AppError {
	return New(CodeDependencyBlock, fmt.Sprintf("Cannot delete %s with %d employees", entity, count))
}

// Persistence wraps an unexpected store failure. The cause stays in Err and
// is logged, never shown to the caller.
func Persistence(err error, message string) *AppError {
	return Wrap(err, CodeInternalError, message)
}
