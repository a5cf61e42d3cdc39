package account

import (
	// 外部依赖
	"context"
	"errors"
	"time"

	bcrypt "golang.org/x/crypto/bcrypt"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	core "github.com/chemstack/labstock/pkg/core/account"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	model "github.com/chemstack/labstock/pkg/model"
	repo "github.com/chemstack/labstock/pkg/repo"
	repoAccount "github.com/chemstack/labstock/pkg/repo/account"
	utils "github.com/chemstack/labstock/pkg/utils"
)

type accountImpl struct {
	accounts repo.AccountRepo
}

func New() core.Service {
	return &accountImpl{accounts: repoAccount.NewAccountRepo()}
}

// NewWithRepo is the seam tests use to swap in a fake credential store.
func NewWithRepo(accounts repo.AccountRepo) core.Service {
	return &accountImpl{accounts: accounts}
}

func (a *accountImpl) Login(ctx context.Context, req *core.LoginReq) (*core.LoginResp, error) {
	user, err := a.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, code.RecordNotFound) {
			// Same answer as a wrong password: login probes must not
			// reveal which usernames exist.
			return nil, code.LoginErr
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, code.LoginErr
	}

	token, expiresAt, err := auth.IssueToken(user.Username, user.Role)
	if err != nil {
		logger.Errorf(ctx, "issue token for %s err: %+v", user.Username, err)
		return nil, err
	}

	return &core.LoginResp{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		Role:      user.Role,
	}, nil
}

func (a *accountImpl) Register(ctx context.Context, req *core.RegisterReq) (*core.RegisterResp, error) {
	role := req.Role
	if role == "" {
		role = common.RoleUser
	}
	if !role.Valid() {
		return nil, code.ParamErr.WithMsgf("unknown role %q", req.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, code.Internal.WithErr(err)
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := a.accounts.Create(ctx, user); err != nil {
		return nil, err
	}
	return &core.RegisterResp{Username: user.Username, Role: user.Role}, nil
}

func (a *accountImpl) Logout(ctx context.Context, rawToken string) error {
	claims, err := auth.ParseToken(ctx, rawToken)
	if err != nil {
		// Already invalid; logging out twice is not an error.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return auth.Sessions().Revoke(ctx, claims.ID, ttl)
}

func (a *accountImpl) ListUsers(ctx context.Context) (*core.ListUsersResp, error) {
	users, err := a.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	list := utils.FilterSlice(users, func(u *model.User) (*core.UserResponse, bool) {
		return &core.UserResponse{
			Username:  u.Username,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		}, true
	})
	return &core.ListUsersResp{Total: int64(len(list)), List: list}, nil
}

func (a *accountImpl) SetRole(ctx context.Context, req *core.SetRoleReq) error {
	if !req.Role.Valid() {
		return code.ParamErr.WithMsgf("unknown role %q", req.Role)
	}
	return a.accounts.UpdateRole(ctx, req.Username, req.Role)
}
