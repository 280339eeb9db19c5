package department

import (
	"context"
	"database/sql"

	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context, q ListDepartmentsQuery) ([]DepartmentRow, int64, error)
	FindByID(ctx context.Context, id uint) (*DepartmentRow, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	CountEmployees(ctx context.Context, id uint) (int64, error)
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

func withEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.
		Select("departments.*, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.department_id = departments.id").
		Group("departments.id")
}

func (r *repository) FindAll(ctx context.Context, q ListDepartmentsQuery) ([]DepartmentRow, int64, error) {
	var (
		rows  []DepartmentRow
		total int64
	)

	base := r.db.WithContext(ctx).Model(&Department{}).
		Scopes(query.Search(q.Search, "departments.name"))

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withEmployeeCount, query.OrderByID("departments"), query.Paginate(q.Skip, q.Limit)).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*DepartmentRow, error) {
	var row DepartmentRow
	err := r.db.WithContext(ctx).Model(&Department{}).
		Scopes(withEmployeeCount).
		Where("departments.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Department{}).Where("name = ?", name)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// UpdateFields does not look at RowsAffected: MySQL reports 0 for a row
// whose values did not change. Callers load the row to detect a missing id.
func (r *repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&Department{}).Where("id = ?", id).Updates(fields).Error
}

func (r *repository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("employees").Where("department_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Department{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
