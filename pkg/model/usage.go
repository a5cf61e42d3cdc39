package model

import (
	"time"
)

// UsageEvent records one "use one unit" action. Name and batch are copied
// from the reagent at the time of use, not referenced: the source row may be
// deleted or replaced later and the ledger must not change with it.
// Rows are append-only; nothing updates or deletes them.
type UsageEvent struct {
	BaseModel
	OccurredAt  time.Time `gorm:"not null;index:idx_usage_occurred" json:"occurred_at"`
	ReagentName string    `gorm:"type:varchar(255);not null" json:"reagent_name"`
	BatchNumber string    `gorm:"type:varchar(128)" json:"batch_number"`
	Actor       string    `gorm:"type:varchar(120)" json:"actor"`
}

func (*UsageEvent) TableName() string { return "usage_event" }
