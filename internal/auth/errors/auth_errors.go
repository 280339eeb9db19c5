package autherrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthenticated,
		"Invalid credentials",
	)

	ErrInactiveUser = apperror.New(
		apperror.CodeUnauthenticated,
		"Inactive user",
	)

	ErrPasswordMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Passwords do not match",
	)

	ErrTokenGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not issue access token",
	)
)
