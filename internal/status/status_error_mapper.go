package status

import (
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
	statuserrors "github.com/SukhanRumanov/prac3/internal/status/errors"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case dberr.IsNotFound(err):
		return statuserrors.ErrStatusNotFound
	case dberr.IsUniqueViolation(err):
		return statuserrors.ErrStatusNameExists
	}

	return apperror.Persistence(err, fallback)
}
