package department

import "github.com/SukhanRumanov/prac3/internal/shared/patch"

type CreateDepartmentRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=100"`
	Description *string `json:"description" form:"description"`
}

// UpdateDepartmentRequest is a patch: absent members are left untouched.
type UpdateDepartmentRequest struct {
	Name        *string             `json:"name" form:"name" binding:"omitempty,max=100"`
	Description patch.Field[string] `json:"description"`
}

func (r UpdateDepartmentRequest) IsEmpty() bool {
	return r.Name == nil && !r.Description.Set
}

type DepartmentResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	EmployeeCount int64   `json:"employee_count"`
}

type ListDepartmentsQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Search string `form:"search"`
}
