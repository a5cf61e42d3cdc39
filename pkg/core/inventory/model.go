package inventory

import (
	// 外部依赖
	"io"
	"time"

	// 内部引用
	uuid "github.com/chemstack/labstock/pkg/common/uuid"
)

// AddReq carries raw field values from the caller. Date fields are free-form
// strings run through the normalizer: an unparseable date becomes unknown,
// never an error. An empty name is accepted, a looseness kept
// from the original workflow, where rows are often filled in later.
type AddReq struct {
	Name          string `json:"name"`
	Supplier      string `json:"supplier"`
	CatalogNumber string `json:"catalog_number"`
	CASNumber     string `json:"cas_number"`
	InternalID    string `json:"internal_id"`
	BatchNumber   string `json:"batch_number"`
	DateReceived  string `json:"date_received"`
	ExpiryDate    string `json:"expiry_date"`
	ExpiryNote    string `json:"expiry_note"`
	StockQuantity int    `json:"stock_quantity"`
	OpeningDate   string `json:"opening_date"`
	Location      string `json:"location"`
}

type AddResp struct {
	UUID uuid.UUID `json:"uuid"`
}

// QueryReq holds one optional substring pattern per filterable field; active
// patterns AND together, all case-insensitive.
type QueryReq struct {
	Name          *string `form:"name"`
	Supplier      *string `form:"supplier"`
	CatalogNumber *string `form:"catalog_number"`
	CASNumber     *string `form:"cas_number"`
	InternalID    *string `form:"internal_id"`
	BatchNumber   *string `form:"batch_number"`
	Location      *string `form:"location"`
}

// Filters collects the active patterns into a filter set.
func (q *QueryReq) Filters() FilterSet {
	f := FilterSet{}
	set := func(field Field, v *string) {
		if v != nil && *v != "" {
			f[field] = *v
		}
	}
	set(FieldName, q.Name)
	set(FieldSupplier, q.Supplier)
	set(FieldCatalogNumber, q.CatalogNumber)
	set(FieldCASNumber, q.CASNumber)
	set(FieldInternalID, q.InternalID)
	set(FieldBatchNumber, q.BatchNumber)
	set(FieldLocation, q.Location)
	return f
}

// ReagentResponse is one record as rendered to the caller, tagged with its
// current expiry severity so tables can highlight without re-deriving it.
type ReagentResponse struct {
	UUID          uuid.UUID  `json:"uuid"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Name          string     `json:"name"`
	Supplier      string     `json:"supplier"`
	CatalogNumber string     `json:"catalog_number"`
	CASNumber     string     `json:"cas_number"`
	InternalID    string     `json:"internal_id"`
	BatchNumber   string     `json:"batch_number"`
	DateReceived  *time.Time `json:"date_received"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	ExpiryNote    string     `json:"expiry_note"`
	StockQuantity int        `json:"stock_quantity"`
	OpeningDate   *time.Time `json:"opening_date"`
	Location      string     `json:"location"`
	Severity      Severity   `json:"severity"`
}

type QueryResp struct {
	Total int64              `json:"total"`
	List  []*ReagentResponse `json:"list"`
}

type DeleteReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
}

// UpdateReq is a full-record update; nil fields are untouched. Date strings
// go through the normalizer, with the empty string clearing to unknown.
type UpdateReq struct {
	UUID          uuid.UUID `json:"uuid" binding:"required"`
	Name          *string   `json:"name"`
	Supplier      *string   `json:"supplier"`
	CatalogNumber *string   `json:"catalog_number"`
	CASNumber     *string   `json:"cas_number"`
	InternalID    *string   `json:"internal_id"`
	BatchNumber   *string   `json:"batch_number"`
	DateReceived  *string   `json:"date_received"`
	ExpiryDate    *string   `json:"expiry_date"`
	ExpiryNote    *string   `json:"expiry_note"`
	StockQuantity *int      `json:"stock_quantity"`
	OpeningDate   *string   `json:"opening_date"`
	Location      *string   `json:"location"`
}

type ConsumeReq struct {
	UUID uuid.UUID `json:"uuid" binding:"required"`
}

type ConsumeResp struct {
	UUID          uuid.UUID `json:"uuid"`
	StockQuantity int       `json:"stock_quantity"`
}

type ExpiringReq struct {
	// HorizonDays overrides the configured horizon when positive.
	HorizonDays int `form:"horizon_days"`
}

type AlertResponse struct {
	ReagentResponse
	DaysLeft int `json:"days_left"`
}

type ExpiringResp struct {
	ReferenceDate string           `json:"reference_date"`
	HorizonDays   int              `json:"horizon_days"`
	List          []*AlertResponse `json:"list"`
}

type ImportReq struct {
	Filename string
	Reader   io.Reader
}

type ImportResp struct {
	Count int `json:"count"`
}

type ExportReq struct {
	// Format: csv or xlsx. View: all or expiring. Lang picks the header
	// label set.
	Format string `form:"format"`
	View   string `form:"view"`
	Lang   string `form:"lang"`
}

type ExportResp struct {
	Filename    string
	ContentType string
	Content     []byte
}

type UsageEventResponse struct {
	OccurredAt  time.Time `json:"occurred_at"`
	ReagentName string    `json:"reagent_name"`
	BatchNumber string    `json:"batch_number"`
	Actor       string    `json:"actor"`
}

type UsageResp struct {
	Total int64                 `json:"total"`
	List  []*UsageEventResponse `json:"list"`
}

type CasReq struct {
	CAS string `form:"cas" binding:"required"`
}

type CasResp struct {
	Name             string `json:"name"`
	MolecularFormula string `json:"molecular_formula"`
	SMILES           string `json:"smiles"`
}
