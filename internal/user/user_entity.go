package user

import "time"

type User struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Username       string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex:uq_users_username"`
	Email          string    `gorm:"column:email;type:varchar(100);not null;uniqueIndex:uq_users_email"`
	HashedPassword string    `gorm:"column:hashed_password;type:varchar(255);not null"`
	IsActive       bool      `gorm:"column:is_active;not null;default:true"`
	IsSuperuser    bool      `gorm:"column:is_superuser;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
