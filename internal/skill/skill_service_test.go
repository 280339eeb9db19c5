package skill_test

import (
	"context"
	"testing"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/skill"
	skillerrors "github.com/SukhanRumanov/prac3/internal/skill/errors"
	mock_skill "github.com/SukhanRumanov/prac3/internal/skill/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (sqlmock.Sqlmock, *mock_skill.MockRepository, skill.Service) {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := mock_skill.NewMockRepository(ctrl)
	return sqlMock, repo, skill.NewService(db, repo)
}

func TestSkillService_Create(t *testing.T) {
	ctx := context.Background()
	desc := "Backend development"

	t.Run("keeps description", func(t *testing.T) {
		sqlMock, repo, svc := setup(t)
		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().ExistsByName(ctx, "Go").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, sk *skill.Skill) error {
			sk.ID = 1
			return nil
		})
		sqlMock.ExpectCommit()

		resp, err := svc.Create(ctx, skill.CreateSkillRequest{Name: "Go", Description: &desc})

		assert.NoError(t, err)
		assert.Equal(t, &desc, resp.Description)
	})

	t.Run("unique violation", func(t *testing.T) {
		sqlMock, repo, svc := setup(t)
		sqlMock.ExpectBegin()
		repo.EXPECT().WithTx(gomock.Any()).Return(repo)
		repo.EXPECT().ExistsByName(ctx, "Go").Return(false, nil)
		repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505"})
		sqlMock.ExpectRollback()

		_, err := svc.Create(ctx, skill.CreateSkillRequest{Name: "Go"})

		assert.ErrorIs(t, err, skillerrors.ErrSkillNameExists)
	})

	t.Run("blank name", func(t *testing.T) {
		_, _, svc := setup(t)

		_, err := svc.Create(ctx, skill.CreateSkillRequest{Name: " "})

		assert.Equal(t, apperror.CodeInvalidInput, apperror.CodeOf(err))
	})
}
