package employee

import (
	employeeerrors "github.com/SukhanRumanov/prac3/internal/employee/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case dberr.IsNotFound(err):
		return employeeerrors.ErrEmployeeNotFound
	case dberr.IsUniqueViolation(err):
		return employeeerrors.ErrEmployeeEmailExists
	case dberr.IsForeignKeyViolation(err):
		return employeeerrors.ErrReferenceNotFound
	}

	return apperror.Persistence(err, fallback)
}
