package status

import (
	"context"
	"database/sql"

	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=status_repo.go -destination=mock/status_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Status) error
	FindAll(ctx context.Context, q ListStatusesQuery) ([]StatusRow, int64, error)
	FindByID(ctx context.Context, id uint) (*StatusRow, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
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

func (r *repository) Create(ctx context.Context, st *Status) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func withEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.
		Select("statuses.*, COUNT(employees.id) AS employee_count").
		Joins("LEFT JOIN employees ON employees.status_id = statuses.id").
		Group("statuses.id")
}

func (r *repository) FindAll(ctx context.Context, q ListStatusesQuery) ([]StatusRow, int64, error) {
	var (
		rows  []StatusRow
		total int64
	)

	base := r.db.WithContext(ctx).Model(&Status{}).
		Scopes(query.Search(q.Search, "statuses.name"))

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withEmployeeCount, query.OrderByID("statuses"), query.Paginate(q.Skip, q.Limit)).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*StatusRow, error) {
	var row StatusRow
	err := r.db.WithContext(ctx).Model(&Status{}).
		Scopes(withEmployeeCount).
		Where("statuses.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Status{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
