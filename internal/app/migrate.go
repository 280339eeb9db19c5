package app

import (
	"context"
	"errors"

	"github.com/SukhanRumanov/prac3/internal/department"
	"github.com/SukhanRumanov/prac3/internal/employee"
	"github.com/SukhanRumanov/prac3/internal/position"
	"github.com/SukhanRumanov/prac3/internal/shared/apperror"
	"github.com/SukhanRumanov/prac3/internal/skill"
	"github.com/SukhanRumanov/prac3/internal/status"
	"github.com/SukhanRumanov/prac3/internal/user"
	usererrors "github.com/SukhanRumanov/prac3/internal/user/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Models lists the tables in dependency order. Lookup tables come before
// employees so the employee reference views resolve to existing tables.
func Models() []any {
	return []any{
		&department.Department{},
		&position.Position{},
		&status.Status{},
		&skill.Skill{},
		&user.User{},
		&employee.Employee{},
		&employee.EmployeeSkillLink{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

type SeedAccount struct {
	Username    string
	Email       string
	Password    string
	IsSuperuser bool
}

var DefaultAccounts = []SeedAccount{
	{Username: "admin", Email: "admin@company.com", Password: "admin123", IsSuperuser: true},
	{Username: "user", Email: "user@company.com", Password: "user123"},
}

func ptr(s string) *string { return &s }

// Seed fills an empty database with the reference data. It does nothing
// once any department exists. "active" is inserted first so it takes id 1.
func Seed(ctx context.Context, db *gorm.DB, users user.Service, l *zap.Logger) error {
	if l == nil {
		l = zap.L()
	}

	var count int64
	if err := db.WithContext(ctx).Model(&department.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		l.Info("seed skipped, data already present")
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		statuses := []status.Status{
			{Name: "active"},
			{Name: "on leave"},
			{Name: "sick leave"},
			{Name: "business trip"},
			{Name: "dismissed"},
		}
		departments := []department.Department{
			{Name: "IT", Description: ptr("Information technology")},
			{Name: "HR", Description: ptr("Human resources")},
			{Name: "Finance", Description: ptr("Finance department")},
			{Name: "Sales", Description: ptr("Sales department")},
		}
		positions := []position.Position{
			{Title: "Developer", Description: ptr("Backend developer"), BaseSalary: decimal.NewFromInt(100000)},
			{Title: "Project manager", Description: ptr("Project manager"), BaseSalary: decimal.NewFromInt(120000)},
			{Title: "HR specialist", Description: ptr("Personnel specialist"), BaseSalary: decimal.NewFromInt(80000)},
			{Title: "Accountant", Description: ptr("Chief accountant"), BaseSalary: decimal.NewFromInt(90000)},
		}
		skills := []skill.Skill{
			{Name: "Go", Description: ptr("The Go programming language")},
			{Name: "Gin", Description: ptr("The Gin web framework")},
			{Name: "PostgreSQL", Description: ptr("PostgreSQL database")},
			{Name: "Docker", Description: ptr("Containerization")},
			{Name: "JavaScript", Description: ptr("The JavaScript programming language")},
		}

		for _, rows := range []any{&statuses, &departments, &positions, &skills} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, acc := range DefaultAccounts {
		if _, err := users.Create(ctx, user.CreateUserRequest{
			Username:    acc.Username,
			Email:       acc.Email,
			Password:    acc.Password,
			IsSuperuser: acc.IsSuperuser,
		}); err != nil && !errors.Is(err, usererrors.ErrUsernameAlreadyExists) {
			return apperror.From(err)
		}
	}

	l.Info("seed completed")
	return nil
}
