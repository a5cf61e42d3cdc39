package inventory

import (
	// 外部依赖
	"context"

	// 内部引用
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
)

// Service is the reagent inventory core. All methods take context.Context;
// the web layer passes *gin.Context straight through so implementations can
// reach the current user and the bound transaction.
type Service interface {
	// Add appends one record.
	Add(ctx context.Context, req *AddReq) (*AddResp, error)
	// Query returns the filtered snapshot in insertion order.
	Query(ctx context.Context, req *QueryReq) (*QueryResp, error)
	// Get fetches one record by uuid.
	Get(ctx context.Context, id uuid.UUID) (*ReagentResponse, error)
	// Update applies a full-record update by uuid.
	Update(ctx context.Context, req *UpdateReq) error
	// Delete removes one record by uuid.
	Delete(ctx context.Context, req *DeleteReq) error
	// Consume uses one unit and logs it to the ledger.
	Consume(ctx context.Context, req *ConsumeReq) (*ConsumeResp, error)
	// Expiring returns the alert view for the horizon.
	Expiring(ctx context.Context, req *ExpiringReq) (*ExpiringResp, error)
	// DeleteAll wipes the store. Admin only at the web boundary.
	DeleteAll(ctx context.Context) error
	// Import replaces the store from a tabular file, all or nothing.
	Import(ctx context.Context, req *ImportReq) (*ImportResp, error)
	// Export serializes a view of the store to a tabular file.
	Export(ctx context.Context, req *ExportReq) (*ExportResp, error)
	// Usage returns the consumption ledger.
	Usage(ctx context.Context) (*UsageResp, error)
	// ExportUsage serializes the ledger.
	ExportUsage(ctx context.Context, req *ExportReq) (*ExportResp, error)
	// QueryCAS fetches basic compound data for a CAS number.
	QueryCAS(ctx context.Context, req *CasReq) (*CasResp, error)
}
