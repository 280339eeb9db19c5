package user

type CreateUserRequest struct {
	Username    string `json:"username" form:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" form:"email" binding:"required,email,max=100"`
	Password    string `json:"password" form:"password" binding:"required,min=6,max=72"`
	IsSuperuser bool   `json:"-" form:"-"`
}

type SetFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
	CreatedAt   string `json:"created_at"`
}

type ListUsersQuery struct {
	Skip   int    `form:"skip,default=0" binding:"min=0"`
	Limit  int    `form:"limit,default=100" binding:"min=1,max=1000"`
	Search string `form:"search"`
}
