package inventory

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	code "github.com/chemstack/labstock/pkg/common/code"
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
	core "github.com/chemstack/labstock/pkg/core/inventory"
	auth "github.com/chemstack/labstock/pkg/middleware/auth"
	model "github.com/chemstack/labstock/pkg/model"
	repo "github.com/chemstack/labstock/pkg/repo"
)

// fakeStore is an in-memory ReagentRepo with the same identity and
// transactional contract as the real one.
type fakeStore struct {
	records []*model.Reagent
	usage   []*model.UsageEvent
}

var _ repo.ReagentRepo = (*fakeStore)(nil)

func (f *fakeStore) Create(_ context.Context, data *model.Reagent) error {
	if data.UUID == uuid.Nil {
		data.UUID = uuid.New()
	}
	now := time.Now()
	data.CreatedAt, data.UpdatedAt = now, now
	f.records = append(f.records, data)
	return nil
}

func (f *fakeStore) GetByUUID(_ context.Context, id uuid.UUID) (*model.Reagent, error) {
	for _, r := range f.records {
		if r.UUID == id {
			return r, nil
		}
	}
	return nil, code.RecordNotFound
}

func (f *fakeStore) List(_ context.Context) ([]*model.Reagent, error) {
	return f.records, nil
}

func (f *fakeStore) UpdateByUUID(ctx context.Context, id uuid.UUID, data map[string]any) error {
	r, err := f.GetByUUID(ctx, id)
	if err != nil {
		return err
	}
	for column, value := range data {
		switch column {
		case "name":
			r.Name = value.(string)
		case "supplier":
			r.Supplier = value.(string)
		case "location":
			r.Location = value.(string)
		case "stock_quantity":
			r.StockQuantity = value.(int)
		case "expiry_date":
			r.ExpiryDate = value.(*time.Time)
		}
	}
	return nil
}

func (f *fakeStore) DeleteByUUID(ctx context.Context, id uuid.UUID) error {
	for i, r := range f.records {
		if r.UUID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return code.RecordNotFound
}

func (f *fakeStore) DeleteAll(_ context.Context) error {
	f.records = nil
	return nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, records []*model.Reagent) error {
	f.records = nil
	for _, r := range records {
		if err := f.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) ConsumeOne(ctx context.Context, id uuid.UUID, actor string) (int, error) {
	r, err := f.GetByUUID(ctx, id)
	if err != nil {
		return 0, err
	}
	if r.StockQuantity <= 0 {
		return 0, code.InsufficientStock
	}
	r.StockQuantity--
	f.usage = append(f.usage, &model.UsageEvent{
		OccurredAt:  time.Now(),
		ReagentName: r.Name,
		BatchNumber: r.BatchNumber,
		Actor:       actor,
	})
	return r.StockQuantity, nil
}

func (f *fakeStore) ListUsage(_ context.Context) ([]*model.UsageEvent, error) {
	return f.usage, nil
}

type fakePubChem struct {
	info *repo.CompoundInfo
	err  error
}

func (f *fakePubChem) GetCompoundByCAS(_ context.Context, _ string) (*repo.CompoundInfo, error) {
	return f.info, f.err
}

func newTestService(store *fakeStore) core.Service {
	return NewWithRepos(store, &fakePubChem{})
}

func TestAddAndQuery(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	resp, err := svc.Add(ctx, &core.AddReq{
		Name:          "NaOH",
		Supplier:      "Merck",
		ExpiryDate:    "2030-01-01",
		StockQuantity: 3,
		Location:      "Shelf 2",
	})
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if resp.UUID == uuid.Nil {
		t.Fatal("Add returned nil uuid")
	}

	q, err := svc.Query(ctx, &core.QueryReq{})
	if err != nil {
		t.Fatalf("Query err: %v", err)
	}
	if q.Total != 1 || q.List[0].Name != "NaOH" {
		t.Fatalf("Query = %+v, want the NaOH record", q)
	}
	if q.List[0].Severity != core.SeverityOk {
		t.Fatalf("severity = %v, want ok", q.List[0].Severity)
	}
	if q.List[0].ExpiryDate == nil || q.List[0].ExpiryDate.Year() != 2030 {
		t.Fatalf("expiry not normalized: %+v", q.List[0].ExpiryDate)
	}
}

func TestAddRejectsNegativeQuantity(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Add(context.Background(), &core.AddReq{Name: "X", StockQuantity: -1})
	if !errors.Is(err, code.ValidationErr) {
		t.Fatalf("err = %v, want ValidationErr", err)
	}
}

func TestAddUnparseableDateIsUnknown(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)

	if _, err := svc.Add(context.Background(), &core.AddReq{Name: "X", ExpiryDate: "soon"}); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if store.records[0].ExpiryDate != nil {
		t.Fatalf("expiry = %v, want unknown", store.records[0].ExpiryDate)
	}
}

func TestQueryFilters(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	for _, req := range []*core.AddReq{
		{Name: "Hydrochloric Acid", Location: "Fridge A"},
		{Name: "Acetic Acid", Location: "Shelf 1"},
		{Name: "Ethanol", Location: "Fridge A"},
	} {
		if _, err := svc.Add(ctx, req); err != nil {
			t.Fatalf("Add err: %v", err)
		}
	}

	name, location := "acid", "fridge"
	q, err := svc.Query(ctx, &core.QueryReq{Name: &name, Location: &location})
	if err != nil {
		t.Fatalf("Query err: %v", err)
	}
	if q.Total != 1 || q.List[0].Name != "Hydrochloric Acid" {
		t.Fatalf("Query = %+v, want only Hydrochloric Acid", q.List)
	}
}

func TestGet(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	added, err := svc.Add(ctx, &core.AddReq{Name: "NaOH"})
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}

	got, err := svc.Get(ctx, added.UUID)
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got.Name != "NaOH" || got.UUID != added.UUID {
		t.Fatalf("Get = %+v", got)
	}

	if _, err := svc.Get(ctx, uuid.New()); !errors.Is(err, code.RecordNotFound) {
		t.Fatalf("stale Get err = %v, want RecordNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	added, err := svc.Add(ctx, &core.AddReq{Name: "NaOH", StockQuantity: 3})
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}

	location := "Fridge B"
	quantity := 5
	if err := svc.Update(ctx, &core.UpdateReq{UUID: added.UUID, Location: &location, StockQuantity: &quantity}); err != nil {
		t.Fatalf("Update err: %v", err)
	}
	if store.records[0].Location != "Fridge B" || store.records[0].StockQuantity != 5 {
		t.Fatalf("update not applied: %+v", store.records[0])
	}

	negative := -1
	if err := svc.Update(ctx, &core.UpdateReq{UUID: added.UUID, StockQuantity: &negative}); !errors.Is(err, code.ValidationErr) {
		t.Fatalf("err = %v, want ValidationErr", err)
	}
	if err := svc.Update(ctx, &core.UpdateReq{UUID: added.UUID}); !errors.Is(err, code.ParamErr) {
		t.Fatalf("empty update err = %v, want ParamErr", err)
	}
	if err := svc.Update(ctx, &core.UpdateReq{UUID: uuid.New(), Location: &location}); !errors.Is(err, code.RecordNotFound) {
		t.Fatalf("stale update err = %v, want RecordNotFound", err)
	}
}

func TestConsumeDrainsToZero(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := auth.WithUser(context.Background(), &model.UserData{Username: "dana"})

	added, err := svc.Add(ctx, &core.AddReq{Name: "NaOH", BatchNumber: "B42", StockQuantity: 3})
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}

	for i, want := range []int{2, 1, 0} {
		resp, err := svc.Consume(ctx, &core.ConsumeReq{UUID: added.UUID})
		if err != nil {
			t.Fatalf("Consume %d err: %v", i, err)
		}
		if resp.StockQuantity != want {
			t.Fatalf("Consume %d quantity = %d, want %d", i, resp.StockQuantity, want)
		}
	}

	// Fourth use fails and appends nothing.
	if _, err := svc.Consume(ctx, &core.ConsumeReq{UUID: added.UUID}); !errors.Is(err, code.InsufficientStock) {
		t.Fatalf("err = %v, want InsufficientStock", err)
	}

	usage, err := svc.Usage(ctx)
	if err != nil {
		t.Fatalf("Usage err: %v", err)
	}
	if usage.Total != 3 {
		t.Fatalf("ledger has %d events, want 3", usage.Total)
	}
	for _, event := range usage.List {
		if event.ReagentName != "NaOH" || event.BatchNumber != "B42" || event.Actor != "dana" {
			t.Fatalf("bad ledger event: %+v", event)
		}
	}
}

func TestConsumeStaleID(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Consume(context.Background(), &core.ConsumeReq{UUID: uuid.New()})
	if !errors.Is(err, code.RecordNotFound) {
		t.Fatalf("err = %v, want RecordNotFound", err)
	}
}

func TestExpiring(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	expired := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	soon := time.Now().AddDate(0, 0, 10).Format("2006-01-02")
	far := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	for _, req := range []*core.AddReq{
		{Name: "old", ExpiryDate: expired},
		{Name: "soon", ExpiryDate: soon},
		{Name: "fine", ExpiryDate: far},
		{Name: "unknown"},
	} {
		if _, err := svc.Add(ctx, req); err != nil {
			t.Fatalf("Add err: %v", err)
		}
	}

	resp, err := svc.Expiring(ctx, &core.ExpiringReq{})
	if err != nil {
		t.Fatalf("Expiring err: %v", err)
	}
	if resp.HorizonDays != 60 {
		t.Fatalf("horizon = %d, want the configured 60", resp.HorizonDays)
	}
	if len(resp.List) != 2 {
		t.Fatalf("got %d alerts, want 2", len(resp.List))
	}
	if resp.List[0].Name != "old" || resp.List[0].Severity != core.SeverityExpired {
		t.Fatalf("alert[0] = %+v", resp.List[0])
	}
	if resp.List[1].Name != "soon" || resp.List[1].Severity != core.SeverityExpiringSoon {
		t.Fatalf("alert[1] = %+v", resp.List[1])
	}
	if resp.List[1].DaysLeft != 10 {
		t.Fatalf("days left = %d, want 10", resp.List[1].DaysLeft)
	}

	// A narrow override hides the 10-day record.
	resp, err = svc.Expiring(ctx, &core.ExpiringReq{HorizonDays: 5})
	if err != nil {
		t.Fatalf("Expiring err: %v", err)
	}
	if len(resp.List) != 1 || resp.List[0].Name != "old" {
		t.Fatalf("narrow horizon alerts = %+v, want only the expired record", resp.List)
	}
}

func TestImportReplacesStore(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	before, err := svc.Add(ctx, &core.AddReq{Name: "doomed"})
	if err != nil {
		t.Fatalf("Add err: %v", err)
	}

	in := "Reagent Name,Supplier,Catalog Number,CAS Number,Internal Lab ID," +
		"Batch Number,Date Received,Expiry Date,Expiry Note,Stock Quantity,Opening Date,Physical Location\n" +
		"NaOH,Merck,,,,,,,,3,,\n" +
		"HCl,Sigma,,,,,,,,,,\n"

	resp, err := svc.Import(ctx, &core.ImportReq{Filename: "reagents.csv", Reader: strings.NewReader(in)})
	if err != nil {
		t.Fatalf("Import err: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("imported %d, want 2", resp.Count)
	}

	q, _ := svc.Query(ctx, &core.QueryReq{})
	if q.Total != 2 || q.List[0].Name != "NaOH" || q.List[1].Name != "HCl" {
		t.Fatalf("store after import = %+v", q.List)
	}
	// Missing quantity takes the configured fallback of one.
	if q.List[1].StockQuantity != 1 {
		t.Fatalf("HCl quantity = %d, want fallback 1", q.List[1].StockQuantity)
	}

	// The old record's id is stale now.
	if err := svc.Delete(ctx, &core.DeleteReq{UUID: before.UUID}); !errors.Is(err, code.RecordNotFound) {
		t.Fatalf("stale delete err = %v, want RecordNotFound", err)
	}
}

func TestImportBadSchemaLeavesStoreUntouched(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Add(ctx, &core.AddReq{Name: "survivor"}); err != nil {
		t.Fatalf("Add err: %v", err)
	}

	in := "Name,Qty\nNaOH,3\n"
	_, err := svc.Import(ctx, &core.ImportReq{Filename: "bad.csv", Reader: strings.NewReader(in)})
	if !errors.Is(err, code.SchemaMismatch) {
		t.Fatalf("err = %v, want SchemaMismatch", err)
	}

	q, _ := svc.Query(ctx, &core.QueryReq{})
	if q.Total != 1 || q.List[0].Name != "survivor" {
		t.Fatalf("failed import must not mutate the store, got %+v", q.List)
	}
}

func TestExportViews(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store)
	ctx := context.Background()

	expired := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	if _, err := svc.Add(ctx, &core.AddReq{Name: "old", ExpiryDate: expired}); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if _, err := svc.Add(ctx, &core.AddReq{Name: "fine"}); err != nil {
		t.Fatalf("Add err: %v", err)
	}

	all, err := svc.Export(ctx, &core.ExportReq{Format: "csv"})
	if err != nil {
		t.Fatalf("Export err: %v", err)
	}
	if all.ContentType != "text/csv" || !strings.HasSuffix(all.Filename, ".csv") {
		t.Fatalf("csv export metadata = %q %q", all.ContentType, all.Filename)
	}
	if !strings.Contains(string(all.Content), "fine") {
		t.Fatal("all view should contain every record")
	}

	expiring, err := svc.Export(ctx, &core.ExportReq{Format: "csv", View: "expiring"})
	if err != nil {
		t.Fatalf("Export err: %v", err)
	}
	text := string(expiring.Content)
	if !strings.Contains(text, "old") || strings.Contains(text, "fine") {
		t.Fatalf("expiring view = %q", text)
	}
}

func TestQueryCAS(t *testing.T) {
	store := &fakeStore{}

	svc := NewWithRepos(store, &fakePubChem{info: &repo.CompoundInfo{
		Name:             "sodium hydroxide",
		MolecularFormula: "HNaO",
	}})
	resp, err := svc.QueryCAS(context.Background(), &core.CasReq{CAS: "1310-73-2"})
	if err != nil {
		t.Fatalf("QueryCAS err: %v", err)
	}
	if resp.Name != "sodium hydroxide" || resp.MolecularFormula != "HNaO" {
		t.Fatalf("QueryCAS = %+v", resp)
	}

	svc = NewWithRepos(store, &fakePubChem{})
	if _, err := svc.QueryCAS(context.Background(), &core.CasReq{CAS: "0000-00-0"}); !errors.Is(err, code.CASNotFoundErr) {
		t.Fatalf("err = %v, want CASNotFoundErr", err)
	}
}
