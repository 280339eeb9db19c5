package skill

type CreateSkillRequest struct {
	Name        string  `json:"name" form:"name" binding:"required,max=100"`
	Description *string `json:"description" form:"description"`
}

type SkillResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	EmployeeCount int64   `json:"employee_count"`
}

type ListSkillsQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Search string `form:"search"`
}
