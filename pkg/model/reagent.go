package model

import (
	"time"
)

// Reagent is one physical reagent lot. Two rows may be field-identical; the
// uuid is the only identity. Date columns are nullable: NULL means the date
// was absent or unparseable on the way in, and stays unknown.
type Reagent struct {
	BaseModel
	Name          string     `gorm:"type:varchar(255);not null;index:idx_reagent_name" json:"name"`
	Supplier      string     `gorm:"type:varchar(255)" json:"supplier"`
	CatalogNumber string     `gorm:"type:varchar(128);index:idx_reagent_catalog" json:"catalog_number"`
	CASNumber     string     `gorm:"type:varchar(64);index:idx_reagent_cas" json:"cas_number"`
	InternalID    string     `gorm:"type:varchar(128);index:idx_reagent_internal" json:"internal_id"`
	BatchNumber   string     `gorm:"type:varchar(128)" json:"batch_number"`
	DateReceived  *time.Time `gorm:"type:date" json:"date_received"`
	ExpiryDate    *time.Time `gorm:"type:date;index:idx_reagent_expiry" json:"expiry_date"`
	ExpiryNote    string     `gorm:"type:text" json:"expiry_note"`
	StockQuantity int        `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	OpeningDate   *time.Time `gorm:"type:date" json:"opening_date"`
	Location      string     `gorm:"type:varchar(255)" json:"location"`
}

func (*Reagent) TableName() string { return "reagent" }
