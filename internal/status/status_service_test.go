package status_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/status"
	statuserrors "github.com/SukhanRumanov/prac3/internal/status/errors"
	mock_status "github.com/SukhanRumanov/prac3/internal/status/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func setup(t *testing.T) (sqlmock.Sqlmock, *mock_status.MockRepository, status.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_status.NewMockRepository(ctrl)
	return sqlMock, repo, status.NewService(db, repo)
}

func TestStatusService_List(t *testing.T) {
	ctx := context.Background()
	_, repo, svc := setup(t)
	q := status.ListStatusesQuery{Limit: 100}

	repo.EXPECT().FindAll(ctx, q).Return([]status.StatusRow{
		{Status: status.Status{ID: status.ActiveID, Name: "active"}, EmployeeCount: 12},
		{Status: status.Status{ID: 2, Name: "vacation"}},
	}, int64(2), nil)

	page, err := svc.List(ctx, q)

	assert.NoError(t, err)
	items := page.Items.([]status.StatusResponse)
	assert.Len(t, items, 2)
	assert.Equal(t, "active", items[0].Name)
	assert.Equal(t, int64(12), items[0].EmployeeCount)
}

func TestStatusService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		_, repo, svc := setup(t)
		repo.EXPECT().FindByID(ctx, uint(8)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, 8)

		assert.ErrorIs(t, err, statuserrors.ErrStatusNotFound)
	})

	t.Run("store failure", func(t *testing.T) {
		_, repo, svc := setup(t)
		repo.EXPECT().FindByID(ctx, uint(8)).Return(nil, errors.New("boom"))

		_, err := svc.GetByID(ctx, 8)

		assert.Equal(t, "Error retrieving status", apperror.From(err).Message)
	})
}

func TestStatusService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		sqlMock, repo, svc := setup(t)
		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().ExistsByName(ctx, "sick leave").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, st *status.Status) error {
			st.ID = 6
			return nil
		})
		sqlMock.ExpectCommit()

		resp, err := svc.Create(ctx, status.CreateStatusRequest{Name: "sick leave "})

		assert.NoError(t, err)
		assert.Equal(t, uint(6), resp.ID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate", func(t *testing.T) {
		sqlMock, repo, svc := setup(t)
		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().ExistsByName(ctx, "active").Return(true, nil)
		sqlMock.ExpectRollback()

		_, err := svc.Create(ctx, status.CreateStatusRequest{Name: "active"})

		assert.Equal(t, "Status with this name already exists", apperror.From(err).Message)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
