package department

import (
	"context"
	"database/sql"
	"strings"

	departmenterrors "github.com/SukhanRumanov/prac3/internal/department/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/response"

	"go.uber.org/zap"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListDepartmentsQuery) (response.Page, error)
	GetByID(ctx context.Context, id uint) (DepartmentResponse, error)
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) List(ctx context.Context, q ListDepartmentsQuery) (response.Page, error) {
	rows, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list departments failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving departments")
	}

	return response.NewPage(mapToListResponse(rows), total, q.Skip, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (DepartmentResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err, "Error retrieving department")
	}
	return mapToResponse(*row), nil
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return DepartmentResponse{}, apperror.RequiredField("Name")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Persistence(err, "Error creating department")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByName(ctx, name, 0)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err, "Error creating department")
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
	}

	dept := &Department{Name: name, Description: req.Description}
	if err := qtx.Create(ctx, dept); err != nil {
		l.Warn("create department failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err, "Error creating department")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Persistence(err, "Error creating department")
	}

	l.Info("department created", zap.Uint("department_id", dept.ID))
	return mapToResponse(DepartmentRow{Department: *dept}), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Persistence(err, "Error updating department")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err, "Error updating department")
	}

	if req.IsEmpty() {
		return mapToResponse(*current), nil
	}

	updates := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return DepartmentResponse{}, apperror.RequiredField("Name")
		}
		if name != current.Name {
			exists, err := qtx.ExistsByName(ctx, name, id)
			if err != nil {
				return DepartmentResponse{}, mapRepositoryError(err, "Error updating department")
			}
			if exists {
				return DepartmentResponse{}, departmenterrors.ErrDepartmentNameExists
			}
		}
		updates["name"] = name
	}
	req.Description.Apply(updates, "description")

	if err := qtx.UpdateFields(ctx, id, updates); err != nil {
		l.Warn("update department failed", zap.Uint("department_id", id), zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err, "Error updating department")
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err, "Error updating department")
	}

	if err := tx.Commit(); err != nil {
		l.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, apperror.Persistence(err, "Error updating department")
	}

	return mapToResponse(*updated), nil
}

// Delete refuses while any employee still references the department.
func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete department begin tx failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting department")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err, "Error deleting department")
	}

	count, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return mapRepositoryError(err, "Error deleting department")
	}
	if count > 0 {
		return apperror.DependencyBlock("department", count)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		l.Warn("delete department failed", zap.Uint("department_id", id), zap.Error(err))
		return mapRepositoryError(err, "Error deleting department")
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete department commit failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting department")
	}

	l.Info("department deleted", zap.Uint("department_id", id))
	return nil
}

func mapToResponse(row DepartmentRow) DepartmentResponse {
	return DepartmentResponse{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		EmployeeCount: row.EmployeeCount,
	}
}

func mapToListResponse(rows []DepartmentRow) []DepartmentResponse {
	res := make([]DepartmentResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}
