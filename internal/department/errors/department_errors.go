package departmenterrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
	)

	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"Department with this name already exists",
	)

	// ErrDepartmentInUse is returned when the store refuses the delete
	// after the employee count check passed.
	ErrDepartmentInUse = apperror.New(
		apperror.CodeDependencyBlock,
		"Cannot delete department with assigned employees",
	)

	ErrInvalidDepartmentID = apperror.InvalidID("department")
)
