package position

import (
	"github.com/SukhanRumanov/prac3/internal/shared/patch"

	"github.com/shopspring/decimal"
)

type CreatePositionRequest struct {
	Title       string           `json:"title" form:"title" binding:"required,max=100"`
	Description *string          `json:"description" form:"description"`
	BaseSalary  *decimal.Decimal `json:"base_salary" form:"base_salary" binding:"required"`
}

type UpdatePositionRequest struct {
	Title       *string             `json:"title" form:"title" binding:"omitempty,max=100"`
	Description patch.Field[string] `json:"description"`
	BaseSalary  *decimal.Decimal    `json:"base_salary" form:"base_salary"`
}

func (r UpdatePositionRequest) IsEmpty() bool {
	return r.Title == nil && !r.Description.Set && r.BaseSalary == nil
}

type PositionResponse struct {
	ID            uint            `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description"`
	BaseSalary    decimal.Decimal `json:"base_salary"`
	EmployeeCount int64           `json:"employee_count"`
}

type ListPositionsQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Search string `form:"search"`
}
