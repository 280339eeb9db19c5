package position_test

import (
	"context"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/position"
	positionerrors "github.com/SukhanRumanov/prac3/internal/position/errors"
	mock_position "github.com/SukhanRumanov/prac3/internal/position/mock"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *mock_position.MockRepository
	service position.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_position.NewMockRepository(ctrl)
	return &serviceDeps{sqlMock: sqlMock, repo: repo, service: position.NewService(db, repo)}
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

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPositionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success rounds salary", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Developer", uint(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, p *position.Position) error {
			p.ID = 2
			return nil
		})

		resp, err := deps.service.Create(ctx, position.CreatePositionRequest{Title: "Developer", BaseSalary: money("1500.555")})

		assert.NoError(t, err)
		assert.Equal(t, uint(2), resp.ID)
		assert.Equal(t, "1500.56", resp.BaseSalary.StringFixed(2))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative salary", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, position.CreatePositionRequest{Title: "Developer", BaseSalary: money("-1")})

		assert.ErrorIs(t, err, positionerrors.ErrInvalidBaseSalary)
	})

	t.Run("salary beyond column precision", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, position.CreatePositionRequest{Title: "Developer", BaseSalary: money("100000000")})

		assert.Equal(t, "Base Salary is invalid", apperror.From(err).Message)
	})

	t.Run("duplicate title", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Manager", uint(0)).Return(true, nil)

		_, err := deps.service.Create(ctx, position.CreatePositionRequest{Title: "Manager", BaseSalary: money("10")})

		assert.Equal(t, "Position with this title already exists", apperror.From(err).Message)
	})

	t.Run("mysql duplicate key", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().ExistsByTitle(ctx, "Manager", uint(0)).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&mysql.MySQLError{Number: 1062})

		_, err := deps.service.Create(ctx, position.CreatePositionRequest{Title: "Manager", BaseSalary: money("10")})

		assert.ErrorIs(t, err, positionerrors.ErrPositionTitleExists)
	})
}

func TestPositionService_Update(t *testing.T) {
	ctx := context.Background()
	current := &position.PositionRow{Position: position.Position{ID: 1, Title: "Manager", BaseSalary: decimal.NewFromInt(100)}}

	t.Run("salary only", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)
		deps.repo.EXPECT().UpdateFields(ctx, uint(1), gomock.Any()).DoAndReturn(func(_ context.Context, _ uint, fields map[string]any) error {
			assert.Len(t, fields, 1)
			assert.Equal(t, "250", fields["base_salary"].(decimal.Decimal).String())
			return nil
		})
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil)

		_, err := deps.service.Update(ctx, 1, position.UpdatePositionRequest{BaseSalary: money("250")})

		assert.NoError(t, err)
	})

	t.Run("same title skips uniqueness check", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, true)
		title := "Manager"
		deps.repo.EXPECT().FindByID(ctx, uint(1)).Return(current, nil).Times(2)
		deps.repo.EXPECT().UpdateFields(ctx, uint(1), map[string]any{"title": "Manager"}).Return(nil)

		_, err := deps.service.Update(ctx, 1, position.UpdatePositionRequest{Title: &title})

		assert.NoError(t, err)
	})
}

func TestPositionService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, 3)

		assert.ErrorIs(t, err, positionerrors.ErrPositionNotFound)
	})

	t.Run("blocked", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(deps, false)
		deps.repo.EXPECT().FindByID(ctx, uint(3)).Return(&position.PositionRow{}, nil)
		deps.repo.EXPECT().CountEmployees(ctx, uint(3)).Return(int64(1), nil)

		err := deps.service.Delete(ctx, 3)

		assert.Equal(t, "Cannot delete position with 1 employees", apperror.From(err).Message)
	})
}
