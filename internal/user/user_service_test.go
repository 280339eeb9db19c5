package user_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/user"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"
	mock_user "github.com/SukhanRumanov/prac3/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *mock_user.MockRepository
	service user.Service
}

func setup(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_user.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: user.NewService(db, repo),
	}
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()
	req := user.CreateUserRequest{Username: " alice ", Email: "alice@example.com", Password: "secret123"}

	t.Run("success", func(t *testing.T) {
		deps := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByUsername(ctx, "alice").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@example.com").Return(false, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "alice", u.Username)
				assert.True(t, u.IsActive)
				assert.False(t, u.IsSuperuser)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte("secret123")))
				u.ID = 5
				return nil
			})
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), resp.ID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("username taken", func(t *testing.T) {
		deps := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByUsername(ctx, "alice").Return(true, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrUsernameAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("email taken", func(t *testing.T) {
		deps := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByUsername(ctx, "alice").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@example.com").Return(true, nil)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
	})

	t.Run("race lost on unique index", func(t *testing.T) {
		deps := setup(t)
		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().ExistsByUsername(ctx, "alice").Return(false, nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "alice@example.com").Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_users_email"})
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
	})
}

func TestUserService_SetActive(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		deps := setup(t)
		ctx := contextutil.WithUserID(context.Background(), 1)

		deps.repo.EXPECT().
			UpdateFields(ctx, uint(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uint, fields map[string]any) error {
				assert.Equal(t, false, fields["is_active"])
				return nil
			})
		deps.repo.EXPECT().FindByID(ctx, uint(2)).Return(&user.User{ID: 2, Username: "bob", IsActive: false}, nil)

		resp, err := deps.service.SetActive(ctx, 2, false)

		assert.NoError(t, err)
		assert.False(t, resp.IsActive)
	})

	t.Run("own account", func(t *testing.T) {
		deps := setup(t)
		ctx := contextutil.WithUserID(context.Background(), 1)

		_, err := deps.service.SetActive(ctx, 1, false)

		assert.ErrorIs(t, err, usererrors.ErrCannotChangeSelf)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setup(t)
		ctx := contextutil.WithUserID(context.Background(), 1)

		// The update touches no row; the reload is what reports the missing id.
		deps.repo.EXPECT().UpdateFields(ctx, uint(9), gomock.Any()).Return(nil)
		deps.repo.EXPECT().FindByID(ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.SetSuperuser(ctx, 9, true)

		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	ctx := context.Background()
	q := user.ListUsersQuery{Skip: 0, Limit: 10}

	t.Run("success", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(ctx, q).Return([]user.User{{ID: 1, Username: "admin"}}, int64(1), nil)

		page, err := deps.service.List(ctx, q)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Len(t, page.Items, 1)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setup(t)
		deps.repo.EXPECT().FindAll(ctx, q).Return(nil, int64(0), errors.New("db down"))

		_, err := deps.service.List(ctx, q)

		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
		assert.Equal(t, "Error retrieving users", apperror.From(err).Message)
	})
}
