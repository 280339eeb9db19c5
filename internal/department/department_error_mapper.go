package department

import (
	departmenterrors "github.com/SukhanRumanov/prac3/internal/department/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	switch {
	case dberr.IsNotFound(err):
		return departmenterrors.ErrDepartmentNotFound
	case dberr.IsUniqueViolation(err):
		return departmenterrors.ErrDepartmentNameExists
	case dberr.IsForeignKeyViolation(err):
		return departmenterrors.ErrDepartmentInUse
	}

	return apperror.Persistence(err, fallback)
}
