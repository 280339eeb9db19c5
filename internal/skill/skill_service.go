package skill

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"
	skillerrors "github.com/SukhanRumanov/prac3/internal/skill/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=skill_service.go -destination=mock/skill_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListSkillsQuery) (response.Page, error)
	GetByID(ctx context.Context, id uint) (SkillResponse, error)
	Create(ctx context.Context, req CreateSkillRequest) (SkillResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("skill.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("skill.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListSkillsQuery) (response.Page, error) {
	rows, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list skills failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving skills")
	}

	items := make([]SkillResponse, len(rows))
	for i, r := range rows {
		items[i] = mapToResponse(r)
	}
	return response.NewPage(items, total, q.Skip, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (SkillResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return SkillResponse{}, mapRepositoryError(err, "Error retrieving skill")
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateSkillRequest) (SkillResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return SkillResponse{}, apperror.RequiredField("Name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create skill begin tx failed", zap.Error(err))
		return SkillResponse{}, apperror.Persistence(err, "Error creating skill")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByName(ctx, name)
	if err != nil {
		return SkillResponse{}, mapRepositoryError(err, "Error creating skill")
	}
	if exists {
		return SkillResponse{}, skillerrors.ErrSkillNameExists
	}

	sk := &Skill{Name: name, Description: req.Description}
	if err := qtx.Create(ctx, sk); err != nil {
		return SkillResponse{}, mapRepositoryError(err, "Error creating skill")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create skill commit failed", zap.Error(err))
		return SkillResponse{}, apperror.Persistence(err, "Error creating skill")
	}

	return mapToResponse(SkillRow{Skill: *sk}), nil
}

func mapToResponse(row SkillRow) SkillResponse {
	return SkillResponse{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		EmployeeCount: row.EmployeeCount,
	}
}
