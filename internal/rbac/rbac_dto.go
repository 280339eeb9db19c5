package rbac

const (
	ResourceDepartment = "department"
	ResourcePosition   = "position"
	ResourceEmployee   = "employee"
	ResourceStatus     = "status"
	ResourceSkill      = "skill"
	ResourceUser       = "user"
)

const (
	ActionRead   = "read"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type EnforceRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Allowed  bool   `json:"allowed"`
}
