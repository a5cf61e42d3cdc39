package inventory

import (
	// 外部依赖
	"context"
	"fmt"
	"time"

	// 内部引用
	config "github.com/chemstack/labstock/internal/config"
	code "github.com/chemstack/labstock/pkg/common/code"
	dates "github.com/chemstack/labstock/pkg/common/dates"
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	core "github.com/chemstack/labstock/pkg/core/inventory"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
	logger "github.com/chemstack/labstock/pkg/middleware/logger"
	model "github.com/chemstack/labstock/pkg/model"
	repo "github.com/chemstack/labstock/pkg/repo"
	repoPubchem "github.com/chemstack/labstock/pkg/repo/pubchem"
	repoReagent "github.com/chemstack/labstock/pkg/repo/reagent"
	utils "github.com/chemstack/labstock/pkg/utils"
)

type inventoryImpl struct {
	store   repo.ReagentRepo
	pubchem repo.PubChemRepo
}

func New() core.Service {
	return &inventoryImpl{
		store:   repoReagent.NewReagentRepo(),
		pubchem: repoPubchem.NewPubChemRepo(),
	}
}

// NewWithRepos is the seam tests use to swap in fakes.
func NewWithRepos(store repo.ReagentRepo, pubchem repo.PubChemRepo) core.Service {
	return &inventoryImpl{store: store, pubchem: pubchem}
}

func (s *inventoryImpl) Add(ctx context.Context, req *core.AddReq) (*core.AddResp, error) {
	if req.StockQuantity < 0 {
		return nil, code.ValidationErr.WithMsg("stock_quantity must not be negative")
	}

	data := &model.Reagent{
		Name:          req.Name,
		Supplier:      req.Supplier,
		CatalogNumber: req.CatalogNumber,
		CASNumber:     req.CASNumber,
		InternalID:    req.InternalID,
		BatchNumber:   req.BatchNumber,
		DateReceived:  dates.Normalize(req.DateReceived),
		ExpiryDate:    dates.Normalize(req.ExpiryDate),
		ExpiryNote:    req.ExpiryNote,
		StockQuantity: req.StockQuantity,
		OpeningDate:   dates.Normalize(req.OpeningDate),
		Location:      req.Location,
	}
	if err := s.store.Create(ctx, data); err != nil {
		logger.Errorf(ctx, "add reagent err: %+v", err)
		return nil, err
	}
	return &core.AddResp{UUID: data.UUID}, nil
}

func (s *inventoryImpl) Query(ctx context.Context, req *core.QueryReq) (*core.QueryResp, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := core.ApplyFilters(records, req.Filters())

	horizon := config.Global().Inventory.ExpiryHorizonDays
	now := time.Now()
	list := utils.FilterSlice(matched, func(r *model.Reagent) (*core.ReagentResponse, bool) {
		return toResponse(r, now, horizon), true
	})
	return &core.QueryResp{Total: int64(len(list)), List: list}, nil
}

func (s *inventoryImpl) Get(ctx context.Context, id uuid.UUID) (*core.ReagentResponse, error) {
	record, err := s.store.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(record, time.Now(), config.Global().Inventory.ExpiryHorizonDays), nil
}

func (s *inventoryImpl) Update(ctx context.Context, req *core.UpdateReq) error {
	updateData := make(map[string]any)
	if req.Name != nil {
		updateData["name"] = *req.Name
	}
	if req.Supplier != nil {
		updateData["supplier"] = *req.Supplier
	}
	if req.CatalogNumber != nil {
		updateData["catalog_number"] = *req.CatalogNumber
	}
	if req.CASNumber != nil {
		updateData["cas_number"] = *req.CASNumber
	}
	if req.InternalID != nil {
		updateData["internal_id"] = *req.InternalID
	}
	if req.BatchNumber != nil {
		updateData["batch_number"] = *req.BatchNumber
	}
	if req.DateReceived != nil {
		updateData["date_received"] = dates.Normalize(*req.DateReceived)
	}
	if req.ExpiryDate != nil {
		updateData["expiry_date"] = dates.Normalize(*req.ExpiryDate)
	}
	if req.ExpiryNote != nil {
		updateData["expiry_note"] = *req.ExpiryNote
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return code.ValidationErr.WithMsg("stock_quantity must not be negative")
		}
		updateData["stock_quantity"] = *req.StockQuantity
	}
	if req.OpeningDate != nil {
		updateData["opening_date"] = dates.Normalize(*req.OpeningDate)
	}
	if req.Location != nil {
		updateData["location"] = *req.Location
	}

	if len(updateData) == 0 {
		return code.ParamErr.WithMsg("at least one field to update is required")
	}
	return s.store.UpdateByUUID(ctx, req.UUID, updateData)
}

func (s *inventoryImpl) Delete(ctx context.Context, req *core.DeleteReq) error {
	return s.store.DeleteByUUID(ctx, req.UUID)
}

func (s *inventoryImpl) Consume(ctx context.Context, req *core.ConsumeReq) (*core.ConsumeResp, error) {
	actor := ""
	if user := auth.GetCurrentUser(ctx); user != nil {
		actor = user.Username
	}

	quantity, err := s.store.ConsumeOne(ctx, req.UUID, actor)
	if err != nil {
		return nil, err
	}
	return &core.ConsumeResp{UUID: req.UUID, StockQuantity: quantity}, nil
}

func (s *inventoryImpl) Expiring(ctx context.Context, req *core.ExpiringReq) (*core.ExpiringResp, error) {
	horizon := config.Global().Inventory.ExpiryHorizonDays
	if req.HorizonDays > 0 {
		horizon = req.HorizonDays
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	alerts := core.EvaluateExpiry(records, now, horizon)
	list := make([]*core.AlertResponse, 0, len(alerts))
	for _, alert := range alerts {
		resp := &core.AlertResponse{ReagentResponse: *toResponse(alert.Record, now, horizon)}
		resp.Severity = alert.Severity
		resp.DaysLeft = daysLeft(alert.Record.ExpiryDate, now)
		list = append(list, resp)
	}

	return &core.ExpiringResp{
		ReferenceDate: now.Format(dates.Layout),
		HorizonDays:   horizon,
		List:          list,
	}, nil
}

func (s *inventoryImpl) DeleteAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

// Import is all or nothing: the file is parsed completely before the store
// is touched, and the replace itself is one transaction. Any failure leaves
// the previous contents exactly as they were.
func (s *inventoryImpl) Import(ctx context.Context, req *core.ImportReq) (*core.ImportResp, error) {
	fallback := config.Global().Inventory.ImportQuantityFallback
	records, err := core.DecodeRecords(req.Reader, core.DetectFormat(req.Filename), fallback)
	if err != nil {
		logger.Warnf(ctx, "import %q rejected: %v", req.Filename, err)
		return nil, err
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		logger.Errorf(ctx, "import %q replace err: %+v", req.Filename, err)
		return nil, err
	}
	logger.Infof(ctx, "import %q replaced store with %d records", req.Filename, len(records))
	return &core.ImportResp{Count: len(records)}, nil
}

func (s *inventoryImpl) Export(ctx context.Context, req *core.ExportReq) (*core.ExportResp, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	view := req.View
	if view == "expiring" {
		horizon := config.Global().Inventory.ExpiryHorizonDays
		alerts := core.EvaluateExpiry(records, time.Now(), horizon)
		records = utils.FilterSlice(alerts, func(a core.ExpiryAlert) (*model.Reagent, bool) {
			return a.Record, true
		})
	} else {
		view = "all"
	}

	format := core.FormatXLSX
	if req.Format == string(core.FormatCSV) {
		format = core.FormatCSV
	}

	content, err := core.EncodeRecords(records, format, req.Lang)
	if err != nil {
		return nil, err
	}
	return &core.ExportResp{
		Filename:    fmt.Sprintf("reagents-%s-%s.%s", view, time.Now().Format(dates.Layout), format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func (s *inventoryImpl) Usage(ctx context.Context) (*core.UsageResp, error) {
	events, err := s.store.ListUsage(ctx)
	if err != nil {
		return nil, err
	}
	list := utils.FilterSlice(events, func(e *model.UsageEvent) (*core.UsageEventResponse, bool) {
		return &core.UsageEventResponse{
			OccurredAt:  e.OccurredAt,
			ReagentName: e.ReagentName,
			BatchNumber: e.BatchNumber,
			Actor:       e.Actor,
		}, true
	})
	return &core.UsageResp{Total: int64(len(list)), List: list}, nil
}

func (s *inventoryImpl) ExportUsage(ctx context.Context, req *core.ExportReq) (*core.ExportResp, error) {
	events, err := s.store.ListUsage(ctx)
	if err != nil {
		return nil, err
	}

	format := core.FormatXLSX
	if req.Format == string(core.FormatCSV) {
		format = core.FormatCSV
	}
	content, err := core.EncodeUsage(events, format)
	if err != nil {
		return nil, err
	}
	return &core.ExportResp{
		Filename:    fmt.Sprintf("usage-log-%s.%s", time.Now().Format(dates.Layout), format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func (s *inventoryImpl) QueryCAS(ctx context.Context, req *core.CasReq) (*core.CasResp, error) {
	if req.CAS == "" {
		return nil, code.ParamErr.WithMsg("cas is required")
	}

	info, err := s.pubchem.GetCompoundByCAS(ctx, req.CAS)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, code.CASNotFoundErr
	}
	return &core.CasResp{
		Name:             info.Name,
		MolecularFormula: info.MolecularFormula,
		SMILES:           info.SMILES,
	}, nil
}

func toResponse(r *model.Reagent, now time.Time, horizonDays int) *core.ReagentResponse {
	severity, evaluated := core.ClassifyExpiry(r.ExpiryDate, now, horizonDays)
	if !evaluated {
		severity = core.SeverityOk
	}
	return &core.ReagentResponse{
		UUID:          r.UUID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		Name:          r.Name,
		Supplier:      r.Supplier,
		CatalogNumber: r.CatalogNumber,
		CASNumber:     r.CASNumber,
		InternalID:    r.InternalID,
		BatchNumber:   r.BatchNumber,
		DateReceived:  r.DateReceived,
		ExpiryDate:    r.ExpiryDate,
		ExpiryNote:    r.ExpiryNote,
		StockQuantity: r.StockQuantity,
		OpeningDate:   r.OpeningDate,
		Location:      r.Location,
		Severity:      severity,
	}
}

func daysLeft(expiry *time.Time, now time.Time) int {
	if expiry == nil {
		return 0
	}
	ref := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(ref).Hours() / 24)
}
