package user

import (
	"context"

	"github.com/SukhanRumanov/prac3/internal/auth/gate"
)

// NewAccountFinder exposes the user table to the gate.
func NewAccountFinder(repo Repository) gate.AccountFinder {
	return gate.AccountFinderFunc(func(ctx context.Context, id uint) (gate.Account, error) {
		u, err := repo.FindByID(ctx, id)
		if err != nil {
			return gate.Account{}, err
		}
		return gate.Account{
			ID:          u.ID,
			Username:    u.Username,
			IsActive:    u.IsActive,
			IsSuperuser: u.IsSuperuser,
		}, nil
	})
}
