package controllers

import (
	"net/http"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/api/validators"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/vaccines"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

// ListVaccines supports free-text search plus status filtering and sorting
// via query parameters.
func ListVaccines(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		input := vaccines.ListVaccinesInput{
			Search:    q.Get("search"),
			Status:    enums.StatusFilter(q.Get("status")),
			SortKey:   enums.SortKey(q.Get("sortBy")),
			SortOrder: enums.SortOrder(q.Get("sortOrder")),
		}
		list, err := svc.ListVaccines(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetVaccine(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetVaccine(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createVaccineRequest struct {
	CommercialName string `json:"commercialName" validate:"required"`
	GenericName    string `json:"genericName" validate:"required"`
	LotNumber      string `json:"lotNumber" validate:"required"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
	QuantityOnHand int    `json:"quantityOnHand" validate:"min=0"`
	ReceivedDate   string `json:"receivedDate,omitempty"`
}

func CreateVaccine(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createVaccineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expiration, err := parseDateField(payload.ExpirationDate, "expirationDate")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var received time.Time
		if payload.ReceivedDate != "" {
			received, err = parseDateField(payload.ReceivedDate, "receivedDate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		dto, err := svc.CreateVaccine(r.Context(), vaccines.CreateVaccineInput{
			CommercialName: payload.CommercialName,
			GenericName:    payload.GenericName,
			LotNumber:      payload.LotNumber,
			ExpirationDate: expiration,
			QuantityOnHand: payload.QuantityOnHand,
			ReceivedDate:   received,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateVaccineRequest struct {
	CommercialName *string `json:"commercialName,omitempty"`
	GenericName    *string `json:"genericName,omitempty"`
	LotNumber      *string `json:"lotNumber,omitempty"`
	ExpirationDate *string `json:"expirationDate,omitempty"`
	ReceivedDate   *string `json:"receivedDate,omitempty"`
}

func UpdateVaccine(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVaccineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := vaccines.UpdateVaccineInput{
			CommercialName: payload.CommercialName,
			GenericName:    payload.GenericName,
			LotNumber:      payload.LotNumber,
		}
		if payload.ExpirationDate != nil {
			expiration, err := parseDateField(*payload.ExpirationDate, "expirationDate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ExpirationDate = &expiration
		}
		if payload.ReceivedDate != nil {
			received, err := parseDateField(*payload.ReceivedDate, "receivedDate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.ReceivedDate = &received
		}

		dto, err := svc.UpdateVaccine(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func DeleteVaccine(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteVaccine(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

type administerRequest struct {
	Count int `json:"count" validate:"required"`
}

func AdministerDoses(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload administerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.AdministerDoses(r.Context(), id, payload.Count)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type adjustQuantityRequest struct {
	Amount      int    `json:"amount" validate:"required"`
	Reason      string `json:"reason" validate:"required"`
	PerformedBy string `json:"performedBy,omitempty"`
}

func AdjustQuantity(svc vaccines.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload adjustQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.AdjustQuantity(r.Context(), id, vaccines.AdjustQuantityInput{
			Amount:      payload.Amount,
			Reason:      enums.AdjustmentReason(payload.Reason),
			PerformedBy: payload.PerformedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func parseDateField(value, field string) (time.Time, error) {
	parsed, err := inventory.ParseExpirationDate(value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "must be a yyyy-MM-dd date").
			WithDetails(map[string]any{"field": field})
	}
	return parsed, nil
}
