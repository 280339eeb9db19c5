package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	autherrors "github.com/SukhanRumanov/prac3/internal/auth/errors"
	"github.com/SukhanRumanov/prac3/internal/auth/token"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/dberr"
	"github.com/SukhanRumanov/prac3/internal/user"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Me(ctx context.Context, userID uint) (user.UserResponse, error)
}

type service struct {
	users    user.Repository
	accounts user.Service
	tokens   *token.Manager
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(users user.Repository, accounts user.Service, tokens *token.Manager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		users:    users,
		accounts: accounts,
		tokens:   tokens,
		now:      time.Now,
		logger:   l,
	}
}

// dummyHash is compared against when the username is unknown so both
// branches spend the same bcrypt time.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	return h
})

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	username := strings.TrimSpace(req.Username)

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
		if dberr.IsNotFound(err) {
			l.Warn("login unknown user", zap.String("username", username))
			return TokenResponse{}, autherrors.ErrInvalidCredentials
		}
		l.Error("login lookup failed", zap.Error(err))
		return TokenResponse{}, apperror.Persistence(err, "Authentication error")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		l.Warn("login wrong password", zap.String("username", username))
		return TokenResponse{}, autherrors.ErrInvalidCredentials
	}

	if !u.IsActive {
		l.Warn("login inactive user", zap.String("username", username))
		return TokenResponse{}, autherrors.ErrInactiveUser
	}

	resp, err := s.issue(u.ID, u.Username)
	if err != nil {
		return TokenResponse{}, err
	}

	resp.User, err = s.Me(ctx, u.ID)
	if err != nil {
		return TokenResponse{}, err
	}

	l.Info("login success", zap.Uint("user_id", u.ID))
	return resp, nil
}

// Register creates a regular account and signs the new user in.
func (s *service) Register(ctx context.Context, req RegisterRequest) (TokenResponse, error) {
	if req.Password != req.ConfirmPassword {
		return TokenResponse{}, autherrors.ErrPasswordMismatch
	}

	created, err := s.accounts.Create(ctx, user.CreateUserRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return TokenResponse{}, err
	}

	resp, err := s.issue(created.ID, created.Username)
	if err != nil {
		return TokenResponse{}, err
	}
	resp.User = created

	contextutil.GetLogger(ctx, s.logger).Info("registration success", zap.Uint("user_id", created.ID))
	return resp, nil
}

func (s *service) Me(ctx context.Context, userID uint) (user.UserResponse, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if dberr.IsNotFound(err) {
			return user.UserResponse{}, usererrors.ErrUserNotFound
		}
		return user.UserResponse{}, apperror.Persistence(err, "Error retrieving user")
	}

	return user.ToResponse(*u), nil
}

func (s *service) issue(userID uint, username string) (TokenResponse, error) {
	tok, err := s.tokens.Issue(userID, username, s.now())
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return TokenResponse{}, autherrors.ErrTokenGenerationFailed
	}
	return TokenResponse{
		AccessToken: tok.Value,
		TokenType:   "bearer",
		ExpiresAt:   tok.ExpiresAt,
	}, nil
}
