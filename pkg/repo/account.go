package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	model "github.com/chemstack/labstock/pkg/model"
)

// AccountRepo stores credentials for the access gate. The password hash is
// opaque to everything above it.
type AccountRepo interface {
	// Create inserts a user, UsernameTaken on collision.
	Create(ctx context.Context, user *model.User) error
	// GetByUsername fetches one user, RecordNotFound when absent.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// List returns every user, oldest first.
	List(ctx context.Context) ([]*model.User, error)
	// UpdateRole changes one user's role.
	UpdateRole(ctx context.Context, username string, role common.Role) error
}
