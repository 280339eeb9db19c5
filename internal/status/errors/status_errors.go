package statuserrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrStatusNotFound = apperror.New(
		apperror.CodeNotFound,
		"Status not found",
	)

	ErrStatusNameExists = apperror.New(
		apperror.CodeConflict,
		"Status with this name already exists",
	)
)
