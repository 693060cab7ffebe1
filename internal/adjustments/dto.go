package adjustments

import (
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// AdjustmentDTO is the API shape of one ledger entry.
type AdjustmentDTO struct {
	ID               uint                   `json:"id"`
	VaccineID        uint                   `json:"vaccineId"`
	AdjustmentAmount int                    `json:"adjustmentAmount"`
	Reason           enums.AdjustmentReason `json:"reason"`
	ReasonLabel      string                 `json:"reasonLabel"`
	Date             time.Time              `json:"date"`
	PerformedBy      string                 `json:"performedBy,omitempty"`
}

// CreateAdjustmentInput holds the validated payload for a standalone ledger
// entry (one recorded after the fact, not produced by a quantity mutation).
type CreateAdjustmentInput struct {
	VaccineID        uint
	AdjustmentAmount int
	Reason           enums.AdjustmentReason
	Date             time.Time
	PerformedBy      string
}

// UpdateAdjustmentInput corrects bookkeeping fields of an existing entry.
type UpdateAdjustmentInput struct {
	AdjustmentAmount *int
	Reason           *enums.AdjustmentReason
	Date             *time.Time
	PerformedBy      *string
}

// ListAdjustmentsInput narrows the ledger read. Zero values mean no
// constraint.
type ListAdjustmentsInput struct {
	VaccineID uint
	From      time.Time
	To        time.Time
}

func toDTO(rec models.AdjustmentRecord) AdjustmentDTO {
	return AdjustmentDTO{
		ID:               rec.ID,
		VaccineID:        rec.VaccineID,
		AdjustmentAmount: rec.AdjustmentAmount,
		Reason:           rec.Reason,
		ReasonLabel:      rec.Reason.Label(),
		Date:             rec.Date,
		PerformedBy:      rec.PerformedBy,
	}
}

func toDTOs(recs []models.AdjustmentRecord) []AdjustmentDTO {
	out := make([]AdjustmentDTO, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDTO(rec))
	}
	return out
}
