package employeeerrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
	)

	ErrEmployeeEmailExists = apperror.New(
		apperror.CodeConflict,
		"Employee with this email already exists",
	)

	// ErrReferenceNotFound is the store-side counterpart of the reference
	// checks, raised when a referenced row vanished before commit.
	ErrReferenceNotFound = apperror.New(
		apperror.CodeInvalidReference,
		"Referenced record not found",
	)

	ErrInvalidSalary = apperror.InvalidField("Salary")
	ErrInvalidRate   = apperror.InvalidField("Rate")
	ErrInvalidEmail  = apperror.InvalidField("Email")

	ErrInvalidEmployeeID = apperror.InvalidID("employee")
)
