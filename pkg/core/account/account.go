package account

import (
	// 外部依赖
	"context"
)

// Service is the access gate: it authenticates callers and yields the role
// the inventory core gates on. Credential storage stays behind the repo;
// the core only ever sees the resulting role.
type Service interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, req *LoginReq) (*LoginResp, error)
	// Register creates a user, UsernameTaken on collision.
	Register(ctx context.Context, req *RegisterReq) (*RegisterResp, error)
	// Logout revokes the presented token.
	Logout(ctx context.Context, rawToken string) error
	// ListUsers returns every account. Admin only at the web boundary.
	ListUsers(ctx context.Context) (*ListUsersResp, error)
	// SetRole changes a user's role. Admin only at the web boundary.
	SetRole(ctx context.Context, req *SetRoleReq) error
}
