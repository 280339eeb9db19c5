package status

import (
	"context"
	"database/sql"
	"strings"

	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"
	statuserrors "github.com/SukhanRumanov/prac3/internal/status/errors"

	"go.uber.org/zap"
)

//go:generate mockgen -source=status_service.go -destination=mock/status_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListStatusesQuery) (response.Page, error)
	GetByID(ctx context.Context, id uint) (StatusResponse, error)
	Create(ctx context.Context, req CreateStatusRequest) (StatusResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("status.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("status.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListStatusesQuery) (response.Page, error) {
	rows, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list statuses failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving statuses")
	}

	items := make([]StatusResponse, len(rows))
	for i, r := range rows {
		items[i] = mapToResponse(r)
	}
	return response.NewPage(items, total, q.Skip, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (StatusResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StatusResponse{}, mapRepositoryError(err, "Error retrieving status")
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateStatusRequest) (StatusResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return StatusResponse{}, apperror.RequiredField("Name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create status begin tx failed", zap.Error(err))
		return StatusResponse{}, apperror.Persistence(err, "Error creating status")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByName(ctx, name)
	if err != nil {
		return StatusResponse{}, mapRepositoryError(err, "Error creating status")
	}
	if exists {
		return StatusResponse{}, statuserrors.ErrStatusNameExists
	}

	st := &Status{Name: name}
	if err := qtx.Create(ctx, st); err != nil {
		return StatusResponse{}, mapRepositoryError(err, "Error creating status")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create status commit failed", zap.Error(err))
		return StatusResponse{}, apperror.Persistence(err, "Error creating status")
	}

	return mapToResponse(StatusRow{Status: *st}), nil
}

func mapToResponse(row StatusRow) StatusResponse {
	return StatusResponse{
		ID:            row.ID,
		Name:          row.Name,
		EmployeeCount: row.EmployeeCount,
	}
}
