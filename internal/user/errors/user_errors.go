package usererrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
	)

	ErrUsernameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Username already exists",
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
	)

	ErrInvalidUserID = apperror.InvalidID("user")

	ErrCannotChangeSelf = apperror.New(
		apperror.CodeInvalidInput,
		"You cannot change your own account flags",
	)
)
