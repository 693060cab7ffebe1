package controllers

import (
	"net/http"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/api/validators"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/adjustments"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

func ListAdjustments(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vaccineID, err := validators.ParseQueryInt(r, "vaccineId", 0, 1, 1<<31-1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		from, err := validators.ParseQueryDate(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		to, err := validators.ParseQueryDate(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := adjustments.ListAdjustmentsInput{
			VaccineID: uint(vaccineID),
			From:      from,
		}
		if !to.IsZero() {
			// End of the requested day, inclusive.
			input.To = to.Add(24*time.Hour - time.Nanosecond)
		}

		list, err := svc.ListAdjustments(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// ListVaccineAdjustments scopes the ledger to one lot from the path.
func ListVaccineAdjustments(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListAdjustments(r.Context(), adjustments.ListAdjustmentsInput{VaccineID: id})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetAdjustment(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetAdjustment(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createAdjustmentRequest struct {
	VaccineID        uint   `json:"vaccineId" validate:"required,min=1"`
	AdjustmentAmount int    `json:"adjustmentAmount" validate:"required"`
	Reason           string `json:"reason" validate:"required"`
	Date             string `json:"date,omitempty"`
	PerformedBy      string `json:"performedBy,omitempty"`
}

func CreateAdjustment(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createAdjustmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var date time.Time
		if payload.Date != "" {
			parsed, err := parseDateField(payload.Date, "date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			date = parsed
		}

		dto, err := svc.CreateAdjustment(r.Context(), adjustments.CreateAdjustmentInput{
			VaccineID:        payload.VaccineID,
			AdjustmentAmount: payload.AdjustmentAmount,
			Reason:           enums.AdjustmentReason(payload.Reason),
			Date:             date,
			PerformedBy:      payload.PerformedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateAdjustmentRequest struct {
	AdjustmentAmount *int    `json:"adjustmentAmount,omitempty"`
	Reason           *string `json:"reason,omitempty"`
	Date             *string `json:"date,omitempty"`
	PerformedBy      *string `json:"performedBy,omitempty"`
}

func UpdateAdjustment(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateAdjustmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := adjustments.UpdateAdjustmentInput{
			AdjustmentAmount: payload.AdjustmentAmount,
			PerformedBy:      payload.PerformedBy,
		}
		if payload.Reason != nil {
			reason := enums.AdjustmentReason(*payload.Reason)
			input.Reason = &reason
		}
		if payload.Date != nil {
			date, err := parseDateField(*payload.Date, "date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Date = &date
		}

		dto, err := svc.UpdateAdjustment(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func DeleteAdjustment(svc adjustments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteAdjustment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
