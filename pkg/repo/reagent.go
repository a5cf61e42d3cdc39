package repo

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	model "github.com/chemstack/labstock/pkg/model"
)

// ReagentRepo is the durable record store plus its append-only usage ledger.
// List order is insertion order; that is also render order. Record identity
// is the uuid assigned at creation; after ReplaceAll every previously issued
// uuid is stale and resolves to RecordNotFound.
type ReagentRepo interface {
	// Create appends one record.
	Create(ctx context.Context, data *model.Reagent) error
	// GetByUUID fetches one record, RecordNotFound when absent.
	GetByUUID(ctx context.Context, id uuid.UUID) (*model.Reagent, error)
	// List returns every record in insertion order.
	List(ctx context.Context) ([]*model.Reagent, error)
	// UpdateByUUID updates the named columns of one record.
	UpdateByUUID(ctx context.Context, id uuid.UUID, data map[string]any) error
	// DeleteByUUID removes one record, RecordNotFound when stale.
	DeleteByUUID(ctx context.Context, id uuid.UUID) error
	// DeleteAll empties the store.
	DeleteAll(ctx context.Context) error
	// ReplaceAll substitutes the store's whole contents in one transaction.
	ReplaceAll(ctx context.Context, records []*model.Reagent) error
	// ConsumeOne decrements stock by one and appends the usage event in the
	// same transaction; both happen or neither. Returns the new quantity.
	ConsumeOne(ctx context.Context, id uuid.UUID, actor string) (int, error)
	// ListUsage returns the ledger, oldest first.
	ListUsage(ctx context.Context) ([]*model.UsageEvent, error)
}
