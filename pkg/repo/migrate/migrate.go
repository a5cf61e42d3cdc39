package migrate

import (
	// 外部依赖
	"context"
	"errors"

	bcrypt "golang.org/x/crypto/bcrypt"
	gorm "gorm.io/gorm"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	common "github.com/chemstack/labstock/pkg/common"
	code "github.com/chemstack/labstock/pkg/common/code"
	db "github.com/chemstack/labstock/pkg/middleware/db"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	model "github.com/chemstack/labstock/pkg/model"
)

func Table(_ context.Context) error {
	return db.DB().DBIns().AutoMigrate(
		&model.User{},       // access gate accounts
		&model.Reagent{},    // reagent records
		&model.UsageEvent{}, // consumption ledger
	)
}

// EnsureAdmin seeds the bootstrap admin when it is missing, so a fresh
// deployment can log in at all. The password comes from config and should be
// changed immediately in anything but a dev setup.
func EnsureAdmin(ctx context.Context) error {
	conf := config.Global().Auth

	user := &model.User{}
	err := db.DB().DBWithContext(ctx).Where("username = ?", conf.AdminUsername).First(user).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return code.QueryRecordErr.WithErr(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(conf.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return code.Internal.WithErr(err)
	}

	admin := &model.User{
		Username:     conf.AdminUsername,
		PasswordHash: string(hash),
		Role:         common.RoleAdmin,
	}
	if err := db.DB().DBWithContext(ctx).Create(admin).Error; err != nil {
		return code.CreateDataErr.WithErr(err)
	}
	logger.Warnf(ctx, "created bootstrap admin user %q with the configured default password", conf.AdminUsername)
	return nil
}
