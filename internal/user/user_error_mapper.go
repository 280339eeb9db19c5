package user

import (
	"strings"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"
)

func mapRepositoryError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	if dberr.IsNotFound(err) {
		return usererrors.ErrUserNotFound
	}

	if dberr.IsUniqueViolation(err) {
		constraint := dberr.Constraint(err)
		if constraint == "uq_users_email" || strings.Contains(err.Error(), "uq_users_email") {
			return usererrors.ErrEmailAlreadyExists
		}
		return usererrors.ErrUsernameAlreadyExists
	}

	return apperror.Persistence(err, fallback)
}
