package vaccines

import (
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// VaccineDTO is the API shape of a vaccine lot, with classification fields
// computed against the reference day of the request.
type VaccineDTO struct {
	ID                  uint                   `json:"id"`
	CommercialName      string                 `json:"commercialName"`
	GenericName         string                 `json:"genericName"`
	FamilyName          string                 `json:"familyName"`
	LotNumber           string                 `json:"lotNumber"`
	ExpirationDate      string                 `json:"expirationDate"`
	QuantityOnHand      int                    `json:"quantityOnHand"`
	ReceivedDate        string                 `json:"receivedDate,omitempty"`
	LastUpdated         time.Time              `json:"lastUpdated"`
	ExpirationStatus    enums.ExpirationStatus `json:"expirationStatus"`
	StockLevel          enums.StockLevel       `json:"stockLevel"`
	DaysUntilExpiration *int                   `json:"daysUntilExpiration"`
}

// CreateVaccineInput holds the validated payload to register a lot.
type CreateVaccineInput struct {
	CommercialName string
	GenericName    string
	LotNumber      string
	ExpirationDate time.Time
	QuantityOnHand int
	ReceivedDate   time.Time
}

// UpdateVaccineInput holds optional mutation values for a lot. Quantity is
// deliberately absent: quantity moves only through AdministerDoses and
// AdjustQuantity so every change stays accounted for.
type UpdateVaccineInput struct {
	CommercialName *string
	GenericName    *string
	LotNumber      *string
	ExpirationDate *time.Time
	ReceivedDate   *time.Time
}

// ListVaccinesInput carries the read-path knobs: free-text search, status
// filter, and sort selection. Zero values mean "everything, input order".
type ListVaccinesInput struct {
	Search    string
	Status    enums.StatusFilter
	SortKey   enums.SortKey
	SortOrder enums.SortOrder
}

// AdjustQuantityInput is a signed correction with its audited reason.
type AdjustQuantityInput struct {
	Amount      int
	Reason      enums.AdjustmentReason
	PerformedBy string
}

func toDTO(lot models.VaccineLot, today time.Time, opts inventory.Options) VaccineDTO {
	dto := VaccineDTO{
		ID:               lot.ID,
		CommercialName:   lot.CommercialName,
		GenericName:      lot.GenericName,
		FamilyName:       enums.VaccineFamilyName(lot.GenericName),
		LotNumber:        lot.LotNumber,
		QuantityOnHand:   lot.QuantityOnHand,
		LastUpdated:      lot.LastUpdated,
		ExpirationStatus: inventory.ClassifyExpiration(lot.ExpirationDate, today, opts),
		StockLevel:       inventory.ClassifyStock(lot.QuantityOnHand, opts),
	}
	if !lot.ExpirationDate.IsZero() {
		dto.ExpirationDate = inventory.FormatDate(lot.ExpirationDate)
		days := inventory.DaysUntilExpiration(lot.ExpirationDate, today)
		dto.DaysUntilExpiration = &days
	}
	if !lot.ReceivedDate.IsZero() {
		dto.ReceivedDate = inventory.FormatDate(lot.ReceivedDate)
	}
	return dto
}

func toDTOs(lots []models.VaccineLot, today time.Time, opts inventory.Options) []VaccineDTO {
	out := make([]VaccineDTO, 0, len(lots))
	for _, lot := range lots {
		out = append(out, toDTO(lot, today, opts))
	}
	return out
}
