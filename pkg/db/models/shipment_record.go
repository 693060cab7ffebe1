package models

import "time"

// ShipmentRecord is the immutable snapshot of a receiving event. It carries
// the vaccine identity fields itself rather than a foreign key: a shipment
// may be logged without (or before) any lot entering inventory.
type ShipmentRecord struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommercialName    string    `gorm:"column:commercial_name;not null" json:"commercial_name"`
	GenericName       string    `gorm:"column:generic_name;not null" json:"generic_name"`
	LotNumber         string    `gorm:"column:lot_number;not null" json:"lot_number"`
	ExpirationDate    time.Time `gorm:"column:expiration_date" json:"expiration_date"`
	QuantitySent      int       `gorm:"column:quantity_sent;not null;default:0" json:"quantity_sent"`
	QuantityReceived  int       `gorm:"column:quantity_received;not null;default:0" json:"quantity_received"`
	PassedInspection  int       `gorm:"column:passed_inspection;not null;default:0" json:"passed_inspection"`
	FailedInspection  int       `gorm:"column:failed_inspection;not null;default:0" json:"failed_inspection"`
	DiscrepancyReason *string   `gorm:"column:discrepancy_reason" json:"discrepancy_reason,omitempty"`
	ReceivedDate      time.Time `gorm:"column:received_date;index" json:"received_date"`
}

func (ShipmentRecord) TableName() string { return "shipment_records" }
