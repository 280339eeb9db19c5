package employee

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	employeeerrors "github.com/SukhanRumanov/prac3/internal/employee/errors"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/shared/contextutil"
	"github.com/SukhanRumanov/prac3/internal/shared/patch"
	"github.com/SukhanRumanov/prac3/internal/shared/response"
	"github.com/SukhanRumanov/prac3/internal/status"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	maxSalary = decimal.RequireFromString("99999999.99")
	maxRate   = decimal.RequireFromString("9.99")
	validate  = validator.New()
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListEmployeesQuery) (response.Page, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) List(ctx context.Context, q ListEmployeesQuery) (response.Page, error) {
	employees, total, err := s.repo.FindAll(ctx, q)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return response.Page{}, apperror.Persistence(err, "Error retrieving employees")
	}

	return response.NewPage(mapToListResponse(employees), total, q.Skip, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, "Error retrieving employee")
	}
	return mapToResponse(*empl), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	empl, err := newEmployee(req)
	if err != nil {
		return EmployeeResponse{}, err
	}
	skillIDs := uniqueIDs(req.SkillIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err, "Error creating employee")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if empl.Email != nil {
		if err := checkEmail(ctx, qtx, *empl.Email, 0); err != nil {
			return EmployeeResponse{}, err
		}
	}
	if err := checkReferences(ctx, qtx, empl.DepartmentID, empl.PositionID, &empl.StatusID, skillIDs); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		l.Warn("create employee failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, "Error creating employee")
	}

	if len(skillIDs) > 0 {
		if err := qtx.ReplaceSkills(ctx, empl.ID, skillIDs); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err, "Error creating employee")
		}
	}

	created, err := qtx.FindByID(ctx, empl.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, "Error creating employee")
	}

	if err := tx.Commit(); err != nil {
		l.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err, "Error creating employee")
	}

	l.Info("employee created", zap.Uint("employee_id", empl.ID))
	return mapToResponse(*created), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	updates, err := buildUpdates(req)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err, "Error updating employee")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	current, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, "Error updating employee")
	}

	if req.IsEmpty() {
		return mapToResponse(*current), nil
	}

	if email, ok := updates["email"].(string); ok && (current.Email == nil || *current.Email != email) {
		if err := checkEmail(ctx, qtx, email, id); err != nil {
			return EmployeeResponse{}, err
		}
	}

	var skillIDs []uint
	if req.SkillIDs != nil {
		skillIDs = uniqueIDs(*req.SkillIDs)
	}
	var departmentID, positionID *uint
	if req.DepartmentID.Set {
		departmentID = req.DepartmentID.Ptr()
	}
	if req.PositionID.Set {
		positionID = req.PositionID.Ptr()
	}
	if err := checkReferences(ctx, qtx, departmentID, positionID, req.StatusID, skillIDs); err != nil {
		return EmployeeResponse{}, err
	}

	updates["updated_at"] = s.now()
	if err := qtx.UpdateFields(ctx, id, updates); err != nil {
		l.Warn("update employee failed", zap.Uint("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err, "Error updating employee")
	}

	if req.SkillIDs != nil {
		if err := qtx.ReplaceSkills(ctx, id, skillIDs); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err, "Error updating employee")
		}
	}

	updated, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err, "Error updating employee")
	}

	if err := tx.Commit(); err != nil {
		l.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Persistence(err, "Error updating employee")
	}

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	l := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		l.Error("delete employee begin tx failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting employee")
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		l.Warn("delete employee failed", zap.Uint("employee_id", id), zap.Error(err))
		return mapRepositoryError(err, "Error deleting employee")
	}

	if err := tx.Commit(); err != nil {
		l.Error("delete employee commit failed", zap.Error(err))
		return apperror.Persistence(err, "Error deleting employee")
	}

	l.Info("employee deleted", zap.Uint("employee_id", id))
	return nil
}

func checkEmail(ctx context.Context, repo Repository, email string, excludeID uint) error {
	exists, err := repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return mapRepositoryError(err, "Error checking employee email")
	}
	if exists {
		return employeeerrors.ErrEmployeeEmailExists
	}
	return nil
}

// checkReferences verifies every non-nil foreign key before the write.
func checkReferences(ctx context.Context, repo Repository, departmentID, positionID, statusID *uint, skillIDs []uint) error {
	refs := []struct {
		entity string
		id     *uint
		exists func(context.Context, uint) (bool, error)
	}{
		{"Department", departmentID, repo.DepartmentExists},
		{"Position", positionID, repo.PositionExists},
		{"Status", statusID, repo.StatusExists},
	}

	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		ok, err := ref.exists(ctx, *ref.id)
		if err != nil {
			return apperror.Persistence(err, "Error validating references")
		}
		if !ok {
			return apperror.InvalidReference(ref.entity, *ref.id)
		}
	}

	if len(skillIDs) == 0 {
		return nil
	}

	found, err := repo.FindSkillIDs(ctx, skillIDs)
	if err != nil {
		return apperror.Persistence(err, "Error validating references")
	}
	known := make(map[uint]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	for _, id := range skillIDs {
		if _, ok := known[id]; !ok {
			return apperror.InvalidReference("Skill", id)
		}
	}
	return nil
}

func newEmployee(req CreateEmployeeRequest) (*Employee, error) {
	first := strings.TrimSpace(req.FirstName)
	if first == "" {
		return nil, apperror.RequiredField("First Name")
	}
	last := strings.TrimSpace(req.LastName)
	if last == "" {
		return nil, apperror.RequiredField("Last Name")
	}

	birth, err := parseDate(req.BirthDate, "Birth Date")
	if err != nil {
		return nil, err
	}
	hire, err := parseDate(req.HireDate, "Hire Date")
	if err != nil {
		return nil, err
	}

	if req.Salary == nil {
		return nil, apperror.RequiredField("Salary")
	}
	if !inRange(*req.Salary, decimal.Zero, maxSalary) {
		return nil, employeeerrors.ErrInvalidSalary
	}

	rate := decimal.NewFromInt(1)
	if req.Rate != nil {
		if !req.Rate.IsPositive() || req.Rate.GreaterThan(maxRate) {
			return nil, employeeerrors.ErrInvalidRate
		}
		rate = *req.Rate
	}

	email := optional(req.Email)
	if email != nil {
		if err := validateEmail(*email); err != nil {
			return nil, err
		}
	}

	statusID := status.ActiveID
	if req.StatusID != nil {
		statusID = *req.StatusID
	}

	return &Employee{
		FirstName:    first,
		LastName:     last,
		MiddleName:   optional(req.MiddleName),
		BirthDate:    birth,
		HireDate:     hire,
		Email:        email,
		Phone:        optional(req.Phone),
		Address:      optional(req.Address),
		Salary:       req.Salary.Round(2),
		Rate:         rate.Round(2),
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		StatusID:     statusID,
	}, nil
}

// buildUpdates turns the patch into column updates. Reference and
// uniqueness checks happen later against the transaction.
func buildUpdates(req UpdateEmployeeRequest) (map[string]any, error) {
	updates := map[string]any{}

	for _, f := range []struct {
		value  *string
		column string
		label  string
	}{
		{req.FirstName, "first_name", "First Name"},
		{req.LastName, "last_name", "Last Name"},
	} {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return nil, apperror.RequiredField(f.label)
		}
		updates[f.column] = v
	}

	for _, f := range []struct {
		value  *string
		column string
		label  string
	}{
		{req.BirthDate, "birth_date", "Birth Date"},
		{req.HireDate, "hire_date", "Hire Date"},
	} {
		if f.value == nil {
			continue
		}
		t, err := parseDate(*f.value, f.label)
		if err != nil {
			return nil, err
		}
		updates[f.column] = t
	}

	if req.Salary != nil {
		if !inRange(*req.Salary, decimal.Zero, maxSalary) {
			return nil, employeeerrors.ErrInvalidSalary
		}
		updates["salary"] = req.Salary.Round(2)
	}
	if req.Rate != nil {
		if !req.Rate.IsPositive() || req.Rate.GreaterThan(maxRate) {
			return nil, employeeerrors.ErrInvalidRate
		}
		updates["rate"] = req.Rate.Round(2)
	}

	if req.Email.Set {
		email := optional(req.Email.Ptr())
		if email == nil {
			updates["email"] = nil
		} else {
			if err := validateEmail(*email); err != nil {
				return nil, err
			}
			updates["email"] = *email
		}
	}

	for _, f := range []struct {
		field  patch.Field[string]
		column string
	}{
		{req.MiddleName, "middle_name"},
		{req.Phone, "phone"},
		{req.Address, "address"},
	} {
		if !f.field.Set {
			continue
		}
		if v := optional(f.field.Ptr()); v != nil {
			updates[f.column] = *v
		} else {
			updates[f.column] = nil
		}
	}

	req.DepartmentID.Apply(updates, "department_id")
	req.PositionID.Apply(updates, "position_id")
	if req.StatusID != nil {
		updates["status_id"] = *req.StatusID
	}

	return updates, nil
}

func parseDate(value, label string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperror.InvalidField(label)
	}
	return t, nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, "email,max=100"); err != nil {
		return employeeerrors.ErrInvalidEmail
	}
	return nil
}

func inRange(v, lo, hi decimal.Decimal) bool {
	return v.GreaterThanOrEqual(lo) && v.LessThanOrEqual(hi)
}

// optional trims s and treats blank as absent.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		MiddleName:   e.MiddleName,
		FullName:     e.FullName(),
		BirthDate:    e.BirthDate.Format(DateLayout),
		HireDate:     e.HireDate.Format(DateLayout),
		Email:        e.Email,
		Phone:        e.Phone,
		Address:      e.Address,
		Salary:       e.Salary,
		Rate:         e.Rate,
		DepartmentID: e.DepartmentID,
		PositionID:   e.PositionID,
		StatusID:     e.StatusID,
		Skills:       make([]string, 0, len(e.Skills)),
		SkillIDs:     make([]uint, 0, len(e.Skills)),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.Department != nil {
		resp.DepartmentName = &e.Department.Name
	}
	if e.Position != nil {
		resp.PositionTitle = &e.Position.Title
	}
	if e.Status != nil {
		resp.StatusName = &e.Status.Name
	}
	for _, sk := range e.Skills {
		resp.Skills = append(resp.Skills, sk.Name)
		resp.SkillIDs = append(resp.SkillIDs, sk.ID)
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
