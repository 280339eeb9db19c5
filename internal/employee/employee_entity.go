package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           uint            `gorm:"primaryKey"`
	FirstName    string          `gorm:"size:50;not null"`
	LastName     string          `gorm:"size:50;not null"`
	MiddleName   *string         `gorm:"size:50"`
	BirthDate    time.Time       `gorm:"type:date;not null"`
	HireDate     time.Time       `gorm:"type:date;not null"`
	Email        *string         `gorm:"size:100;uniqueIndex:uq_employees_email"`
	Phone        *string         `gorm:"size:20"`
	Address      *string         `gorm:"type:text"`
	Salary       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Rate         decimal.Decimal `gorm:"type:numeric(3,2);not null;default:1.0"`
	DepartmentID *uint           `gorm:"index"`
	PositionID   *uint           `gorm:"index"`
	StatusID     uint            `gorm:"not null;default:1;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Department *EmployeeDepartment `gorm:"foreignKey:DepartmentID;references:ID"`
	Position   *EmployeePosition   `gorm:"foreignKey:PositionID;references:ID"`
	Status     *EmployeeStatus     `gorm:"foreignKey:StatusID;references:ID"`
	Skills     []EmployeeSkill     `gorm:"many2many:employee_skills;joinForeignKey:EmployeeID;joinReferences:SkillID"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName is "last first [middle]".
func (e Employee) FullName() string {
	parts := []string{e.LastName, e.FirstName}
	if e.MiddleName != nil && strings.TrimSpace(*e.MiddleName) != "" {
		parts = append(parts, *e.MiddleName)
	}
	return strings.Join(parts, " ")
}

// The reference structs below are read-only views of the lookup tables.
// Their column tags mirror the owning packages so migrations agree.
type EmployeeDepartment struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:100;not null"`
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}

type EmployeePosition struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"column:title;size:100;not null"`
}

func (EmployeePosition) TableName() string {
	return "positions"
}

type EmployeeStatus struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:50;not null"`
}

func (EmployeeStatus) TableName() string {
	return "statuses"
}

type EmployeeSkill struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"column:name;size:100;not null"`
}

func (EmployeeSkill) TableName() string {
	return "skills"
}

// EmployeeSkillLink is one row of the employee_skills join table.
type EmployeeSkillLink struct {
	EmployeeID uint `gorm:"primaryKey;autoIncrement:false"`
	SkillID    uint `gorm:"primaryKey;autoIncrement:false"`
}

func (EmployeeSkillLink) TableName() string {
	return "employee_skills"
}
