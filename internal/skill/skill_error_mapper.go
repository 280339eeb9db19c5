package skill

import (
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
	skillerrors "github.com/SukhanRumanov/prac3/internal/skill/errors"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case dberr.IsNotFound(err):
		return skillerrors.ErrSkillNotFound
	case dberr.IsUniqueViolation(err):
		return skillerrors.ErrSkillNameExists
	}

	return apperror.Persistence(err, fallback)
}
