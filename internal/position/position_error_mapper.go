package position

import (
	positionerrors "github.com/SukhanRumanov/prac3/internal/position/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case dberr.IsNotFound(err):
		return positionerrors.ErrPositionNotFound
	case dberr.IsUniqueViolation(err):
		return positionerrors.ErrPositionTitleExists
	case dberr.IsForeignKeyViolation(err):
		return positionerrors.ErrPositionInUse
	}

	return apperror.Persistence(err, fallback)
}
