package models

import "time"

// VaccineLot is a distinct batch of a vaccine product. Identity and
// quantity state are owned exclusively by the vaccines repository; the
// shipment log and adjustment ledger reference lots by ID without owning
// them.
type VaccineLot struct {
	ID             uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CommercialName string    `gorm:"column:commercial_name;not null" json:"commercial_name"`
	GenericName    string    `gorm:"column:generic_name;not null;index" json:"generic_name"`
	LotNumber      string    `gorm:"column:lot_number;not null" json:"lot_number"`
	ExpirationDate time.Time `gorm:"column:expiration_date" json:"expiration_date"`
	QuantityOnHand int       `gorm:"column:quantity_on_hand;not null;default:0" json:"quantity_on_hand"`
	ReceivedDate   time.Time `gorm:"column:received_date" json:"received_date"`
	LastUpdated    time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (VaccineLot) TableName() string { return "vaccine_lots" }
