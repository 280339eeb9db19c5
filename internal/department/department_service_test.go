package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/department"
	departmenterrors "github.com/SukhanRumanov/prac3/internal/department/errors"
	mock_department "github.com/SukhanRumanov/prac3/internal/department/mock"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/patch"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *mock_department.MockRepository
	service department.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_department.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		service: department.NewService(db, repo),
	}
}

func expectTx(deps *serviceDeps, commit bool) {
	deps.sqlMock.ExpectBegin()
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	if commit {
		deps.sqlMock.ExpectCommit()
	} else {
		deps.sqlMock.ExpectRollback()
	}
}

func strPtr(s string) *string { return &s }

func TestDepartmentService_List(t *testing.T) {
	ctx := context.Background()
	q := department.ListDepartmentsQuery{Skip: 0, Limit: 2, Search: "it"}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, q).Return([]department.DepartmentRow{
			{Department: department.Department{ID: 1, Name: "IT"}, EmployeeCount: 3},
		}, int64(1), nil)

		page, err := deps.service.List(ctx, q)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
		assert.Equal(t, 2, page.Limit)
		items := page.Items.([]department.DepartmentResponse)
		assert.Equal(t, int64(3), items[0].EmployeeCount)
	})

	t.Run("store failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, q).Return(nil, int64(0), errors.New("conn refused"))

		_, err := deps.service.List(ctx, q)

		assert.Equal(t, apperror.CodeInternalError, apperror.CodeOf(err))
		assert.Equal(t, "Error retrieving departments", apperror.From(err).Message)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, uint(42)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, 42)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		deps.repo.EXPECT().ExistsByName(ctx, "Legal", uint(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *department.Department) error {
			d.ID = 5
			return nil
		})

		resp, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "  Legal "})

		assert.NoError(t, err)
		assert.Equal(t, uint(5), resp.ID)
		assert.Equal(t, "Legal", resp.Name)
		assert.Zero(t, resp.EmployeeCount)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().ExistsByName(ctx, "IT", uint(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "IT"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unique race maps to conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().ExistsByName(ctx, "IT", uint(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_departments_name"})

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "IT"})

		assert.Equal(t, "Department with this name already exists", apperror.From(err).Message)
	})

	t.Run("blank name", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, department.CreateDepartmentRequest{Name: "   "})

		assert.Equal(t, "Name is required", apperror.From(err).Message)
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	current := &department.DepartmentRow{Department: department.Department{ID: 1, Name: "IT"}, EmployeeCount: 2}

	t.Run("empty patch writes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)

		resp, err := deps.service.Update(ctx, 1, department.UpdateDepartmentRequest{})

		assert.NoError(t, err)
		assert.Equal(t, "IT", resp.Name)
		assert.Equal(t, int64(2), resp.EmployeeCount)
	})

	t.Run("clears description", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().UpdateFields(ctx, uint(1), map[string]any{"description": nil}).Return(nil)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)

		_, err := deps.service.Update(ctx, 1, department.UpdateDepartmentRequest{Description: patch.Null[string]()})

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("rename to taken name", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().ExistsByName(ctx, "HR", uint(1)).Return(true, nil)

		_, err := deps.service.Update(ctx, 1, department.UpdateDepartmentRequest{Name: strPtr("HR")})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameExists)
	})

	t.Run("missing", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, 9, department.UpdateDepartmentRequest{Name: strPtr("X")})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()
	current := &department.DepartmentRow{Department: department.Department{ID: 1, Name: "IT"}}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().CountEmployees(ctx, uint(1)).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, uint(1)).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, 1))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("blocked by employees", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().CountEmployees(ctx, uint(1)).Return(int64(3), nil)

		err := deps.service.Delete(ctx, 1)

		assert.Equal(t, apperror.CodeDependencyBlock, apperror.CodeOf(err))
		assert.Equal(t, "Cannot delete department with 3 employees", apperror.From(err).Message)
	})

	t.Run("fk race maps to dependency block", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().CountEmployees(ctx, uint(1)).Return(int64(0), nil)
		deps.repo.EXPECT().Delete(ctx, uint(1)).Return(&pgconn.PgError{Code: "23503"})

		err := deps.service.Delete(ctx, 1)

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})
}
