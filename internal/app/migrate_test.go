package app_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/app"
	"github.com/SukhanRumanov/prac3/internal/user"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"
	mock_user "github.com/SukhanRumanov/prac3/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

var countDepartments = regexp.QuoteMeta(`SELECT count(*) FROM "departments"`)

func TestSeed_SkipsPopulatedDatabase(t *testing.T) {
	gdb, mock := newGormMock(t)
	users := mock_user.NewMockService(gomock.NewController(t))

	mock.ExpectQuery(countDepartments).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	err := app.Seed(context.Background(), gdb, users, zap.NewNop())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_EmptyDatabase(t *testing.T) {
	gdb, mock := newGormMock(t)
	users := mock_user.NewMockService(gomock.NewController(t))

	mock.ExpectQuery(countDepartments).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "statuses"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3).AddRow(4).AddRow(5))
	mock.ExpectQuery(`INSERT INTO "departments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3).AddRow(4))
	mock.ExpectQuery(`INSERT INTO "positions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3).AddRow(4))
	mock.ExpectQuery(`INSERT INTO "skills"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3).AddRow(4).AddRow(5))
	mock.ExpectCommit()

	users.EXPECT().Create(gomock.Any(), user.CreateUserRequest{
		Username: "admin", Email: "admin@company.com", Password: "admin123", IsSuperuser: true,
	}).Return(user.UserResponse{ID: 1}, nil)
	// An account left over from an earlier partial seed is not an error.
	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user.UserResponse{}, usererrors.ErrUsernameAlreadyExists)

	err := app.Seed(context.Background(), gdb, users, zap.NewNop())

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_UserCreateFails(t *testing.T) {
	gdb, mock := newGormMock(t)
	users := mock_user.NewMockService(gomock.NewController(t))

	mock.ExpectQuery(countDepartments).WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	for _, table := range []string{"statuses", "departments", "positions", "skills"} {
		mock.ExpectQuery(`INSERT INTO "` + table + `"`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	}
	mock.ExpectCommit()

	users.EXPECT().Create(gomock.Any(), gomock.Any()).Return(user.UserResponse{}, usererrors.ErrEmailAlreadyExists)

	err := app.Seed(context.Background(), gdb, users, zap.NewNop())

	assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
}

func TestModels_EmployeesAfterLookups(t *testing.T) {
	models := app.Models()
	require.Len(t, models, 7)

	names := make([]string, 0, len(models))
	for _, m := range models {
		if tn, ok := m.(interface{ TableName() string }); ok {
			names = append(names, tn.TableName())
		}
	}
	assert.Equal(t, []string{"departments", "positions", "statuses", "skills", "users", "employees", "employee_skills"}, names)
}
