package employee

import (
	"context"
	"database/sql"

	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/shared/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, q ListEmployeesQuery) ([]Employee, int64, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	DepartmentExists(ctx context.Context, id uint) (bool, error)
	PositionExists(ctx context.Context, id uint) (bool, error)
	StatusExists(ctx context.Context, id uint) (bool, error)
	FindSkillIDs(ctx context.Context, ids []uint) ([]uint, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	ReplaceSkills(ctx context.Context, id uint, skillIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

// Create inserts the row only; skill links go through ReplaceSkills.
func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(empl).Error
}

func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Department").
		Preload("Position").
		Preload("Status").
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("skills.id ASC")
		})
}

func filters(q ListEmployeesQuery) []query.Scope {
	from, to := q.hireRange()
	return []query.Scope{
		query.Equal("employees.department_id", q.DepartmentID),
		query.Equal("employees.position_id", q.PositionID),
		query.Equal("employees.status_id", q.StatusID),
		query.AtLeast("employees.hire_date", from),
		query.AtMost("employees.hire_date", to),
		query.AtLeast("employees.salary", q.SalaryFrom),
		query.AtMost("employees.salary", q.SalaryTo),
		query.Search(q.Search, "employees.first_name", "employees.last_name", "employees.middle_name"),
	}
}

func (r *repository) FindAll(ctx context.Context, q ListEmployeesQuery) ([]Employee, int64, error) {
	var (
		employees []Employee
		total     int64
	)

	base := r.db.WithContext(ctx).Model(&Employee{}).Scopes(filters(q)...)

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withRelations, query.OrderByID("employees"), query.Paginate(q.Skip, q.Limit)).
		Find(&employees).Error

	return employees, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(withRelations).
		First(&empl, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Employee{}).Where("email = ?", email)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) exists(ctx context.Context, table string, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "departments", id)
}

func (r *repository) PositionExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "positions", id)
}

func (r *repository) StatusExists(ctx context.Context, id uint) (bool, error) {
	return r.exists(ctx, "statuses", id)
}

func (r *repository) FindSkillIDs(ctx context.Context, ids []uint) ([]uint, error) {
	var found []uint
	if len(ids) == 0 {
		return found, nil
	}
	err := r.db.WithContext(ctx).Model(&EmployeeSkill{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}

// UpdateFields does not look at RowsAffected: MySQL reports 0 for a row
// whose values did not change. Callers load the row to detect a missing id.
func (r *repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&Employee{}).Where("id = ?", id).Updates(fields).Error
}

func (r *repository) ReplaceSkills(ctx context.Context, id uint, skillIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("employee_id = ?", id).Delete(&EmployeeSkillLink{}).Error; err != nil {
		return err
	}
	if len(skillIDs) == 0 {
		return nil
	}

	links := make([]EmployeeSkillLink, len(skillIDs))
	for i, sid := range skillIDs {
		links[i] = EmployeeSkillLink{EmployeeID: id, SkillID: sid}
	}
	return db.Create(&links).Error
}

// Delete removes the employee together with its skill links.
func (r *repository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("employee_id = ?", id).Delete(&EmployeeSkillLink{}).Error; err != nil {
		return err
	}

	res := db.Delete(&Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
