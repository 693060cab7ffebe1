package models

import (
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// AdjustmentRecord is one entry in the append-oriented reconciliation
// ledger. VaccineID is a weak reference: ledger rows outlive the lots they
// describe and are never cascaded on delete.
type AdjustmentRecord struct {
	ID               uint                   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VaccineID        uint                   `gorm:"column:vaccine_id;not null;index" json:"vaccine_id"`
	AdjustmentAmount int                    `gorm:"column:adjustment_amount;not null" json:"adjustment_amount"`
	Reason           enums.AdjustmentReason `gorm:"column:reason;not null" json:"reason"`
	Date             time.Time              `gorm:"column:date;index" json:"date"`
	PerformedBy      string                 `gorm:"column:performed_by" json:"performed_by"`
}

func (AdjustmentRecord) TableName() string { return "adjustment_records" }
