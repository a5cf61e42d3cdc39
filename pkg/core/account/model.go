package account

import (
	// 外部依赖
	"time"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
)

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResp struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	Username  string      `json:"username"`
	Role      common.Role `json:"role"`
}

type RegisterReq struct {
	Username string      `json:"username" binding:"required"`
	Password string      `json:"password" binding:"required"`
	Role     common.Role `json:"role"`
}

type RegisterResp struct {
	Username string      `json:"username"`
	Role     common.Role `json:"role"`
}

type UserResponse struct {
	Username  string      `json:"username"`
	Role      common.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

type ListUsersResp struct {
	Total int64           `json:"total"`
	List  []*UserResponse `json:"list"`
}

type SetRoleReq struct {
	Username string      `json:"username" binding:"required"`
	Role     common.Role `json:"role" binding:"required"`
}
