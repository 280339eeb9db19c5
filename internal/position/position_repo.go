package position

import (
	"context"
	"database/sql"

	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindAll(ctx context.Context, q ListPositionsQuery) ([]PositionRow, int64, error)
	FindByID(ctx context.Context, id uint) (*PositionRow, error)
	ExistsByTitle(ctx context.Context, title string, excludeID uint) (bool, error)
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func withEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.
		Select("positions.*, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.position_id = positions.id").
		Group("positions.id")
}

func (r *repository) FindAll(ctx context.Context, q ListPositionsQuery) ([]PositionRow, int64, error) {
	var (
		rows  []PositionRow
		total int64
	)

	base := r.db.WithContext(ctx).Model(&Position{}).
		Scopes(query.Search(q.Search, "positions.title"))

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withEmployeeCount, query.OrderByID("positions"), query.Paginate(q.Skip, q.Limit)).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*PositionRow, error) {
	var row PositionRow
	err := r.db.WithContext(ctx).Model(&Position{}).
		Scopes(withEmployeeCount).
		Where("positions.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ExistsByTitle(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&Position{}).Where("title = ?", title)
	if excludeID != 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count > 0, err
}

// UpdateFields does not look at RowsAffected: MySQL reports 0 for a row
// whose values did not change. Callers load the row to detect a missing id.
func (r *repository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&Position{}).Where("id = ?", id).Updates(fields).Error
}

func (r *repository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("employees").Where("position_id = ?", id).Count(&count).Error
	return count, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&Position{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
