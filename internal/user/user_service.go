package user

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListUsersQuery) (response.Page, error)
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	SetActive(ctx context.Context, id uint, active bool) (UserResponse, error)
	SetSuperuser(ctx context.Context, id uint, superuser bool) (UserResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListUsersQuery) (response.Page, error) {
	users, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list users failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving users")
	}

	return response.NewPage(mapToListResponse(users), total, q.Skip, q.Limit), nil
}

// Create registers a new account. Username and email are checked first for a
// readable message; the unique indexes still decide a concurrent race.
func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, apperror.Persistence(err, "Error creating user")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByUsername(ctx, username)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err, "Error creating user")
	}
	if exists {
		return UserResponse{}, usererrors.ErrUsernameAlreadyExists
	}

	exists, err = qtx.ExistsByEmail(ctx, email)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err, "Error creating user")
	}
	if exists {
		return UserResponse{}, usererrors.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("failed to hash password", zap.Error(err))
		return UserResponse{}, apperror.Persistence(err, "Error creating user")
	}

	u := &User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashed),
		IsActive:       true,
		IsSuperuser:    req.IsSuperuser,
	}

	if err := qtx.Create(ctx, u); err != nil {
		l.Error("failed to create user", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err, "Error creating user")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, apperror.Persistence(err, "Error creating user")
	}

	l.Info("user created", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return ToResponse(*u), nil
}

func (s *service) SetActive(ctx context.Context, id uint, active bool) (UserResponse, error) {
	return s.setFlag(ctx, id, "is_active", active)
}

func (s *service) SetSuperuser(ctx context.Context, id uint, superuser bool) (UserResponse, error) {
	return s.setFlag(ctx, id, "is_superuser", superuser)
}

// setFlag refuses changes to the caller's own account so an administrator
// cannot lock themselves out.
func (s *service) setFlag(ctx context.Context, id uint, column string, value bool) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if id == contextutil.GetUserID(ctx) {
		return UserResponse{}, usererrors.ErrCannotChangeSelf
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{
		column:       value,
		"updated_at": time.Now().UTC(),
	}); err != nil {
		l.Warn("update user flag failed", zap.Uint("user_id", id), zap.String("flag", column), zap.Error(err))
		return UserResponse{}, mapRepositoryError(err, "Error updating user")
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err, "Error updating user")
	}

	l.Info("user flag changed", zap.Uint("user_id", id), zap.String("flag", column), zap.Bool("value", value))
	return ToResponse(*u), nil
}

// ToResponse hides the password hash.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		IsActive:    u.IsActive,
		IsSuperuser: u.IsSuperuser,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = ToResponse(u)
	}
	return res
}
