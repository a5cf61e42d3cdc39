package model

import (
	common "github.com/chemstack/labstock/pkg/common"
)

// User carries only what the access gate needs: a bcrypt hash and a role.
type User struct {
	BaseModel
	Username     string      `gorm:"type:varchar(120);not null;uniqueIndex:idx_user_username" json:"username"`
	PasswordHash string      `gorm:"type:varchar(120);not null" json:"-"`
	Role         common.Role `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
}

func (*User) TableName() string { return "users" }

// UserData is what the auth middleware hangs on the request context.
type UserData struct {
	Username string      `json:"username"`
	Role     common.Role `json:"role"`
}

func (u *UserData) IsAdmin() bool {
	return u != nil && u.Role == common.RoleAdmin
}
