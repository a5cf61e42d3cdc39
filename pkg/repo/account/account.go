package account

import (
	// 外部依赖
	"context"
	"errors"
	"strings"

	gorm "gorm.io/gorm"

	// 内部引用
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	db "github.com/chemstack/labstock/pkg/middleware/db"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	model "github.com/chemstack/labstock/pkg/model"
	repo "github.com/chemstack/labstock/pkg/repo"
)

type accountImpl struct {
	*db.Datastore
}

func NewAccountRepo() repo.AccountRepo {
	return &accountImpl{Datastore: db.DB()}
}

func (a *accountImpl) Create(ctx context.Context, user *model.User) error {
	err := a.DBWithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(strings.ToLower(err.Error()), "unique") {
		return code.UsernameTaken
	}
	logger.Errorf(ctx, "create user err: %+v", err)
	return code.CreateDataErr.WithErr(err)
}

func (a *accountImpl) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	err := a.DBWithContext(ctx).Where("username = ?", username).First(user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return user, nil
}

func (a *accountImpl) List(ctx context.Context) ([]*model.User, error) {
	var list []*model.User
	if err := a.DBWithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (a *accountImpl) UpdateRole(ctx context.Context, username string, role common.Role) error {
	res := a.DBWithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Update("role", role)
	if res.Error != nil {
		logger.Errorf(ctx, "update role for %s err: %+v", username, res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}
