package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SukhanRumanov/prac3/internal/auth"
	autherrors "github.com/SukhanRumanov/prac3/internal/auth/errors"
	"github.com/SukhanRumanov/prac3/internal/auth/token"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/user"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"
	mock_user "github.com/SukhanRumanov/prac3/internal/user/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authDeps struct {
	repo     *mock_user.MockRepository
	accounts *mock_user.MockService
	tokens   *token.Manager
	service  auth.Service
}

func setupAuthTest(t *testing.T) *authDeps {
	ctrl := gomock.NewController(t)
	repo := mock_user.NewMockRepository(ctrl)
	accounts := mock_user.NewMockService(ctrl)
	tokens := token.NewManager("test-secret", 30*time.Minute)

	return &authDeps{
		repo:     repo,
		accounts: accounts,
		tokens:   tokens,
		service:  auth.NewService(repo, accounts, tokens),
	}
}

func hashed(t *testing.T, password string) string {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupAuthTest(t)
		u := &user.User{ID: 7, Username: "admin", HashedPassword: hashed(t, "admin123"), IsActive: true, IsSuperuser: true}

		d.repo.EXPECT().FindByUsername(ctx, "admin").Return(u, nil)
		d.repo.EXPECT().FindByID(ctx, uint(7)).Return(u, nil)

		res, err := d.service.Login(ctx, auth.LoginRequest{Username: " admin ", Password: "admin123"})

		require.NoError(t, err)
		assert.Equal(t, "bearer", res.TokenType)
		assert.Equal(t, uint(7), res.User.ID)
		assert.True(t, res.User.IsSuperuser)

		claims, err := d.tokens.Verify(res.AccessToken, time.Now())
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "admin", claims.Subject)
	})

	t.Run("unknown user", func(t *testing.T) {
		d := setupAuthTest(t)
		d.repo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Login(ctx, auth.LoginRequest{Username: "ghost", Password: "x"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		d := setupAuthTest(t)
		u := &user.User{ID: 1, Username: "user", HashedPassword: hashed(t, "user123"), IsActive: true}
		d.repo.EXPECT().FindByUsername(ctx, "user").Return(u, nil)

		_, err := d.service.Login(ctx, auth.LoginRequest{Username: "user", Password: "nope"})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		d := setupAuthTest(t)
		u := &user.User{ID: 1, Username: "user", HashedPassword: hashed(t, "user123"), IsActive: false}
		d.repo.EXPECT().FindByUsername(ctx, "user").Return(u, nil)

		_, err := d.service.Login(ctx, auth.LoginRequest{Username: "user", Password: "user123"})

		assert.ErrorIs(t, err, autherrors.ErrInactiveUser)
		assert.Equal(t, "Inactive user", apperror.From(err).Message)
	})

	t.Run("lookup failure", func(t *testing.T) {
		d := setupAuthTest(t)
		d.repo.EXPECT().FindByUsername(ctx, "user").Return(nil, errors.New("connection reset"))

		_, err := d.service.Login(ctx, auth.LoginRequest{Username: "user", Password: "user123"})

		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		d := setupAuthTest(t)
		d.accounts.EXPECT().
			Create(ctx, user.CreateUserRequest{Username: "new", Email: "new@example.com", Password: "secret1"}).
			Return(user.UserResponse{ID: 3, Username: "new", Email: "new@example.com", IsActive: true}, nil)

		res, err := d.service.Register(ctx, auth.RegisterRequest{
			Username: "new", Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret1",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(3), res.User.ID)
		assert.False(t, res.User.IsSuperuser)
		assert.NotEmpty(t, res.AccessToken)
	})

	t.Run("password mismatch", func(t *testing.T) {
		d := setupAuthTest(t)

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Username: "new", Email: "new@example.com", Password: "secret1", ConfirmPassword: "secret2",
		})

		assert.ErrorIs(t, err, autherrors.ErrPasswordMismatch)
	})

	t.Run("duplicate username", func(t *testing.T) {
		d := setupAuthTest(t)
		d.accounts.EXPECT().Create(ctx, gomock.Any()).Return(user.UserResponse{}, usererrors.ErrUsernameAlreadyExists)

		_, err := d.service.Register(ctx, auth.RegisterRequest{
			Username: "admin", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret1",
		})

		assert.ErrorIs(t, err, usererrors.ErrUsernameAlreadyExists)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		d := setupAuthTest(t)
		d.repo.EXPECT().FindByID(ctx, uint(2)).Return(&user.User{ID: 2, Username: "user", IsActive: true}, nil)

		res, err := d.service.Me(ctx, 2)

		require.NoError(t, err)
		assert.Equal(t, "user", res.Username)
	})

	t.Run("not found", func(t *testing.T) {
		d := setupAuthTest(t)
		d.repo.EXPECT().FindByID(ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := d.service.Me(ctx, 9)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}
