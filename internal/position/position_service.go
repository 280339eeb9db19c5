package position

import (
	"context"
	"database/sql"
	"strings"

	positionerrors "github.com/SukhanRumanov/prac3/internal/position/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxSalary is the largest value a numeric(10,2) column holds.
var maxSalary = decimal.RequireFromString("99999999.99")

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListPositionsQuery) (response.Page, error)
	GetByID(ctx context.Context, id uint) (PositionResponse, error)
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	Update(ctx context.Context, id uint, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func validSalary(v decimal.Decimal) bool {
	return !v.IsNegative() && v.LessThanOrEqual(maxSalary)
}

func (s *service) List(ctx context.Context, q ListPositionsQuery) (response.Page, error) {
	rows, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list positions failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving positions")
	}

	return response.NewPage(mapToListResponse(rows), total, q.Skip, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (PositionResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err, "Error retrieving position")
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return PositionResponse{}, apperror.RequiredField("Title")
	}
	if req.BaseSalary == nil {
		return PositionResponse{}, apperror.RequiredField("Base Salary")
	}
	if !validSalary(*req.BaseSalary) {
		return PositionResponse{}, positionerrors.ErrInvalidBaseSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create position begin tx failed", zap.Error(err))
		return PositionResponse{}, apperror.Persistence(err, "Error creating position")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByTitle(ctx, title, 0)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err, "Error creating position")
	}
	if exists {
		return PositionResponse{}, positionerrors.ErrPositionTitleExists
	}

	pos := &Position{
		Title:       title,
		Description: req.Description,
		BaseSalary:  req.BaseSalary.Round(2),
	}
	if err := qtx.Create(ctx, pos); err != nil {
		l.Warn("create position failed", zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err, "Error creating position")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create position commit failed", zap.Error(err))
		return PositionResponse{}, apperror.Persistence(err, "Error creating position")
	}

	l.Info("position created", zap.Uint("position_id", pos.ID))
	return mapToResponse(PositionRow{Position: *pos}), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdatePositionRequest) (PositionResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if req.BaseSalary != nil && !validSalary(*req.BaseSalary) {
		return PositionResponse{}, positionerrors.ErrInvalidBaseSalary
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update position begin tx failed", zap.Error(err))
		return PositionResponse{}, apperror.Persistence(err, "Error updating position")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err, "Error updating position")
	}

	if req.IsEmpty() {
		return mapToResponse(*current), nil
	}

	updates := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return PositionResponse{}, apperror.RequiredField("Title")
		}
		if title != current.Title {
			exists, err := qtx.ExistsByTitle(ctx, title, id)
			if err != nil {
				return PositionResponse{}, mapRepositoryError(err, "Error updating position")
			}
			if exists {
				return PositionResponse{}, positionerrors.ErrPositionTitleExists
			}
		}
		updates["title"] = title
	}
	req.Description.Apply(updates, "description")
	if req.BaseSalary != nil {
		updates["base_salary"] = req.BaseSalary.Round(2)
	}

	if err := qtx.UpdateFields(ctx, id, updates); err != nil {
		l.Warn("update position failed", zap.Uint("position_id", id), zap.Error(err))
		return PositionResponse{}, mapRepositoryError(err, "Error updating position")
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err, "Error updating position")
	}

	if err := tx.Commit(); err != nil {
		l.Error("update position commit failed", zap.Error(err))
		return PositionResponse{}, apperror.Persistence(err, "Error updating position")
	}

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete position begin tx failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting position")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err, "Error deleting position")
	}

	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return mapRepositoryError(err, "Error deleting position")
	}
	if count > 0 {
		return apperror.DependencyBlock("position", count)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		l.Warn("delete position failed", zap.Uint("position_id", id), zap.Error(err))
		return mapRepositoryError(err, "Error deleting position")
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete position commit failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting position")
	}

	l.Info("position deleted", zap.Uint("position_id", id))
	return nil
}

func mapToResponse(row PositionRow) PositionResponse {
	return PositionResponse{
		ID:            row.ID,
		Title:         row.Title,
		Description:   row.Description,
		BaseSalary:    row.BaseSalary,
		EmployeeCount: row.EmployeeCount,
	}
}

func mapToListResponse(rows []PositionRow) []PositionResponse {
	res := make([]PositionResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
