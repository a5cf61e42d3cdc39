package reagent

import (
	// 外部依赖
	"context"
	"errors"
	"time"

	gorm "gorm.io/gorm"

	// 内部引用
	code "github.com/chemstack/labstock/pkg/common/code"
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	db "github.com/chemstack/labstock/pkg/middleware/db"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	model "github.com/chemstack/labstock/pkg/model"
	repo "github.com/chemstack/labstock/pkg/repo"
)

type reagentImpl struct {
	*db.Datastore
}

func NewReagentRepo() repo.ReagentRepo {
	return &reagentImpl{Datastore: db.DB()}
}

func (r *reagentImpl) Create(ctx context.Context, data *model.Reagent) error {
	if err := r.DBWithContext(ctx).Create(data).Error; err != nil {
		logger.Errorf(ctx, "create reagent err: %+v", err)
		return code.CreateDataErr.WithErr(err)
	}
	return nil
}

func (r *reagentImpl) GetByUUID(ctx context.Context, id uuid.UUID) (*model.Reagent, error) {
	record := &model.Reagent{}
	err := r.DBWithContext(ctx).Where("uuid = ?", id).First(record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.RecordNotFound
	}
	if err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return record, nil
}

func (r *reagentImpl) List(ctx context.Context) ([]*model.Reagent, error) {
	var list []*model.Reagent
	if err := r.DBWithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}

func (r *reagentImpl) UpdateByUUID(ctx context.Context, id uuid.UUID, data map[string]any) error {
	res := r.DBWithContext(ctx).Model(&model.Reagent{}).Where("uuid = ?", id).Updates(data)
	if res.Error != nil {
		logger.Errorf(ctx, "update reagent %s err: %+v", id, res.Error)
		return code.UpdateDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (r *reagentImpl) DeleteByUUID(ctx context.Context, id uuid.UUID) error {
	res := r.DBWithContext(ctx).Where("uuid = ?", id).Delete(&model.Reagent{})
	if res.Error != nil {
		logger.Errorf(ctx, "delete reagent %s err: %+v", id, res.Error)
		return code.DeleteDataErr.WithErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return code.RecordNotFound
	}
	return nil
}

func (r *reagentImpl) DeleteAll(ctx context.Context) error {
	if err := r.DBWithContext(ctx).Where("1 = 1").Delete(&model.Reagent{}).Error; err != nil {
		return code.DeleteDataErr.WithErr(err)
	}
	return nil
}

// ReplaceAll swaps the store's contents in one transaction: a failed insert
// rolls back the delete and the previous contents survive untouched.
func (r *reagentImpl) ReplaceAll(ctx context.Context, records []*model.Reagent) error {
	return r.ExecTx(ctx, func(txCtx context.Context) error {
		tx := r.DBWithContext(txCtx)
		if err := tx.Where("1 = 1").Delete(&model.Reagent{}).Error; err != nil {
			return code.DeleteDataErr.WithErr(err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := tx.Create(records).Error; err != nil {
			return code.CreateDataErr.WithErr(err)
		}
		return nil
	})
}

func (r *reagentImpl) ConsumeOne(ctx context.Context, id uuid.UUID, actor string) (int, error) {
	newQuantity := 0
	err := r.ExecTx(ctx, func(txCtx context.Context) error {
		tx := r.DBWithContext(txCtx)

		record := &model.Reagent{}
		if err := tx.Where("uuid = ?", id).First(record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return code.RecordNotFound
			}
			return code.QueryRecordErr.WithErr(err)
		}
		if record.StockQuantity <= 0 {
			return code.InsufficientStock
		}

		// Guard the decrement with the quantity predicate so a concurrent
		// consumer cannot drive the stock negative.
		res := tx.Model(&model.Reagent{}).
			Where("uuid = ? AND stock_quantity > 0", id).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - 1"))
		if res.Error != nil {
			return code.UpdateDataErr.WithErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return code.InsufficientStock
		}

		event := &model.UsageEvent{
			OccurredAt:  time.Now(),
			ReagentName: record.Name,
			BatchNumber: record.BatchNumber,
			Actor:       actor,
		}
		if err := tx.Create(event).Error; err != nil {
			return code.CreateDataErr.WithErr(err)
		}

		newQuantity = record.StockQuantity - 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newQuantity, nil
}

func (r *reagentImpl) ListUsage(ctx context.Context) ([]*model.UsageEvent, error) {
	var list []*model.UsageEvent
	if err := r.DBWithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, code.QueryRecordErr.WithErr(err)
	}
	return list, nil
}
