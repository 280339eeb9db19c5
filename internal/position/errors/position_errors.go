package positionerrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Position not found",
	)

	ErrPositionTitleExists = apperror.New(
		apperror.CodeConflict,
		"Position with this title already exists",
	)

	ErrPositionInUse = apperror.New(
		apperror.CodeDependencyBlock,
		"Cannot delete position with assigned employees",
	)

	ErrInvalidBaseSalary = apperror.InvalidField("Base Salary")

	ErrInvalidPositionID = apperror.InvalidID("position")
)
