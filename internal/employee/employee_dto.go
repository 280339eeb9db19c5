package employee

import (
	"time"

	"github.com/SukhanRumanov/prac3/internal/shared/patch"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type CreateEmployeeRequest struct {
	FirstName    string           `json:"first_name" form:"first_name" binding:"required,max=50"`
	LastName     string           `json:"last_name" form:"last_name" binding:"required,max=50"`
	MiddleName   *string          `json:"middle_name" form:"middle_name" binding:"omitempty,max=50"`
	BirthDate    string           `json:"birth_date" form:"birth_date" binding:"required,datetime=2006-01-02"`
	HireDate     string           `json:"hire_date" form:"hire_date" binding:"required,datetime=2006-01-02"`
	Email        *string          `json:"email" form:"email" binding:"omitempty,email,max=100"`
	Phone        *string          `json:"phone" form:"phone" binding:"omitempty,max=20"`
	Address      *string          `json:"address" form:"address"`
	Salary       *decimal.Decimal `json:"salary" form:"salary" binding:"required"`
	Rate         *decimal.Decimal `json:"rate" form:"rate"`
	DepartmentID *uint            `json:"department_id" form:"department_id" binding:"omitempty,min=1"`
	PositionID   *uint            `json:"position_id" form:"position_id" binding:"omitempty,min=1"`
	StatusID     *uint            `json:"status_id" form:"status_id" binding:"omitempty,min=1"`
	SkillIDs     []uint           `json:"skill_ids" form:"skill_ids" binding:"omitempty,dive,min=1"`
}

// UpdateEmployeeRequest is a patch. Nullable columns use patch.Field so an
// explicit null clears them.
type UpdateEmployeeRequest struct {
	FirstName    *string             `json:"first_name" binding:"omitempty,max=50"`
	LastName     *string             `json:"last_name" binding:"omitempty,max=50"`
	MiddleName   patch.Field[string] `json:"middle_name"`
	BirthDate    *string             `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	HireDate     *string             `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	Email        patch.Field[string] `json:"email"`
	Phone        patch.Field[string] `json:"phone"`
	Address      patch.Field[string] `json:"address"`
	Salary       *decimal.Decimal    `json:"salary"`
	Rate         *decimal.Decimal    `json:"rate"`
	DepartmentID patch.Field[uint]   `json:"department_id"`
	PositionID   patch.Field[uint]   `json:"position_id"`
	StatusID     *uint               `json:"status_id" binding:"omitempty,min=1"`
	SkillIDs     *[]uint             `json:"skill_ids"`
}

func (r UpdateEmployeeRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && !r.MiddleName.Set &&
		r.BirthDate == nil && r.HireDate == nil && !r.Email.Set && !r.Phone.Set &&
		!r.Address.Set && r.Salary == nil && r.Rate == nil && !r.DepartmentID.Set &&
		!r.PositionID.Set && r.StatusID == nil && r.SkillIDs == nil
}

type EmployeeResponse struct {
	ID             uint            `json:"id"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	MiddleName     *string         `json:"middle_name"`
	FullName       string          `json:"full_name"`
	BirthDate      string          `json:"birth_date"`
	HireDate       string          `json:"hire_date"`
	Email          *string         `json:"email"`
	Phone          *string         `json:"phone"`
	Address        *string         `json:"address"`
	Salary         decimal.Decimal `json:"salary"`
	Rate           decimal.Decimal `json:"rate"`
	DepartmentID   *uint           `json:"department_id"`
	DepartmentName *string         `json:"department_name"`
	PositionID     *uint           `json:"position_id"`
	PositionTitle  *string         `json:"position_title"`
	StatusID       uint            `json:"status_id"`
	StatusName     *string         `json:"status_name"`
	Skills         []string        `json:"skills"`
	SkillIDs       []uint          `json:"skill_ids"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type ListEmployeesQuery struct {
	Skip         int              `form:"skip,default=0" binding:"min=0"`
	Limit        int              `form:"limit,default=100" binding:"min=1,max=1000"`
	Search       string           `form:"search"`
	DepartmentID *uint            `form:"department_id" binding:"omitempty,min=1"`
	PositionID   *uint            `form:"position_id" binding:"omitempty,min=1"`
	StatusID     *uint            `form:"status_id" binding:"omitempty,min=1"`
	HireDateFrom string           `form:"hire_date_from" binding:"omitempty,datetime=2006-01-02"`
	HireDateTo   string           `form:"hire_date_to" binding:"omitempty,datetime=2006-01-02"`
	SalaryFrom   *decimal.Decimal `form:"salary_from"`
	SalaryTo     *decimal.Decimal `form:"salary_to"`
}

// hireRange returns the parsed hire date bounds; unparsable bounds are ignored.
func (q ListEmployeesQuery) hireRange() (from, to *time.Time) {
	if t, err := time.Parse(DateLayout, q.HireDateFrom); err == nil {
		from = &t
	}
	if t, err := time.Parse(DateLayout, q.HireDateTo); err == nil {
		to = &t
	}
	return from, to
}
