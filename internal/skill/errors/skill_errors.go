package skillerrors

import "github.com/SukhanRumanov/prac3/internal/shared/apperror"

var (
	ErrSkillNotFound = apperror.New(
		apperror.CodeNotFound,
		"Skill not found",
	)

	ErrSkillNameExists = apperror.New(
		apperror.CodeConflict,
		"Skill with this name already exists",
	)
)
