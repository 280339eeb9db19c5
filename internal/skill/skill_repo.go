package skill

import (
	"context"
	"database/sql"

	"github.com/SukhanRumanov/prac3/internal/shared/connection"
	"github.com/SukhanRumanov/prac3/internal/shared/query"

	"gorm.io/gorm"
)

//go:generate mockgen -source=skill_repo.go -destination=mock/skill_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sk *Skill) error
	FindAll(ctx context.Context, q ListSkillsQuery) ([]SkillRow, int64, error)
	FindByID(ctx context.Context, id uint) (*SkillRow, error)
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

func (r *repository) Create(ctx context.Context, sk *Skill) error {
	return r.db.WithContext(ctx).Create(sk).Error
}

func withEmployeeCount(db *gorm.DB) *gorm.DB {
	return db.
		Select("skills.*, COUNT(employee_skills.employee_id) AS employee_count").
		Joins("LEFT JOIN employee_skills ON employee_skills.skill_id = skills.id").
		Group("skills.id")
}

func (r *repository) FindAll(ctx context.Context, q ListSkillsQuery) ([]SkillRow, int64, error) {
	var (
		rows  []SkillRow
		total int64
	)

	base := r.db.WithContext(ctx).Model(&Skill{}).
		Scopes(query.Search(q.Search, "skills.name"))

	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Scopes(withEmployeeCount, query.OrderByID("skills"), query.Paginate(q.Skip, q.Limit)).
		Find(&rows).Error

	return rows, total, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*SkillRow, error) {
	var row SkillRow
	err := r.db.WithContext(ctx).Model(&Skill{}).
		Scopes(withEmployeeCount).
		Where("skills.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Skill{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}
