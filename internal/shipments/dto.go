package shipments

import (
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// ShipmentDTO is the API shape of one receiving-log entry.
type ShipmentDTO struct {
	ID                uint    `json:"id"`
	CommercialName    string  `json:"commercialName"`
	GenericName       string  `json:"genericName"`
	FamilyName        string  `json:"familyName"`
	LotNumber         string  `json:"lotNumber"`
	ExpirationDate    string  `json:"expirationDate"`
	QuantitySent      int     `json:"quantitySent"`
	QuantityReceived  int     `json:"quantityReceived"`
	PassedInspection  int     `json:"passedInspection"`
	FailedInspection  int     `json:"failedInspection"`
	DiscrepancyReason *string `json:"discrepancyReason,omitempty"`
	ReceivedDate      string  `json:"receivedDate"`
}

// CreateShipmentInput holds the validated payload for a received shipment.
// When ReceiveIntoInventory is set, the doses that passed inspection become
// a new vaccine lot in the same transaction.
type CreateShipmentInput struct {
	CommercialName       string
	GenericName          string
	LotNumber            string
	ExpirationDate       time.Time
	QuantitySent         int
	QuantityReceived     int
	PassedInspection     int
	FailedInspection     int
	DiscrepancyReason    *string
	ReceivedDate         time.Time
	ReceiveIntoInventory bool
}

// UpdateShipmentInput corrects fields of an existing entry. It never
// touches inventory; the lot created at receive time is managed on its own.
type UpdateShipmentInput struct {
	CommercialName    *string
	GenericName       *string
	LotNumber         *string
	ExpirationDate    *time.Time
	QuantitySent      *int
	QuantityReceived  *int
	PassedInspection  *int
	FailedInspection  *int
	DiscrepancyReason *string
	ReceivedDate      *time.Time
}

func toDTO(rec models.ShipmentRecord) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                rec.ID,
		CommercialName:    rec.CommercialName,
		GenericName:       rec.GenericName,
		FamilyName:        enums.VaccineFamilyName(rec.GenericName),
		LotNumber:         rec.LotNumber,
		QuantitySent:      rec.QuantitySent,
		QuantityReceived:  rec.QuantityReceived,
		PassedInspection:  rec.PassedInspection,
		FailedInspection:  rec.FailedInspection,
		DiscrepancyReason: rec.DiscrepancyReason,
	}
	if !rec.ExpirationDate.IsZero() {
		dto.ExpirationDate = inventory.FormatDate(rec.ExpirationDate)
	}
	if !rec.ReceivedDate.IsZero() {
		dto.ReceivedDate = inventory.FormatDate(rec.ReceivedDate)
	}
	return dto
}

func toDTOs(recs []models.ShipmentRecord) []ShipmentDTO {
	out := make([]ShipmentDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDTO(rec))
	}
	return out
}
