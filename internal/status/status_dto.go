package status

type CreateStatusRequest struct {
	Name string `json:"name" form:"name" binding:"required,max=50"`
}

type StatusResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	EmployeeCount int64  `json:"employee_count"`
}

type ListStatusesQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Search string `form:"search"`
}
