package controllers

import (
	"net/http"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/api/validators"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/shipments"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

func ListShipments(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListShipments(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func RecentShipments(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", shipments.DefaultRecentLimit, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.RecentShipments(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func GetShipment(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.GetShipment(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createShipmentRequest struct {
	CommercialName       string  `json:"commercialName" validate:"required"`
	GenericName          string  `json:"genericName" validate:"required"`
	LotNumber            string  `json:"lotNumber" validate:"required"`
	ExpirationDate       string  `json:"expirationDate" validate:"required"`
	QuantitySent         int     `json:"quantitySent" validate:"min=0"`
	QuantityReceived     int     `json:"quantityReceived" validate:"min=0"`
	PassedInspection     int     `json:"passedInspection" validate:"min=0"`
	FailedInspection     int     `json:"failedInspection" validate:"min=0"`
	DiscrepancyReason    *string `json:"discrepancyReason,omitempty"`
	ReceivedDate         string  `json:"receivedDate,omitempty"`
	ReceiveIntoInventory bool    `json:"receiveIntoInventory,omitempty"`
}

func CreateShipment(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createShipmentRequest
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

		dto, err := svc.CreateShipment(r.Context(), shipments.CreateShipmentInput{
			CommercialName:       payload.CommercialName,
			GenericName:          payload.GenericName,
			LotNumber:            payload.LotNumber,
			ExpirationDate:       expiration,
			QuantitySent:         payload.QuantitySent,
			QuantityReceived:     payload.QuantityReceived,
			PassedInspection:     payload.PassedInspection,
			FailedInspection:     payload.FailedInspection,
			DiscrepancyReason:    payload.DiscrepancyReason,
			ReceivedDate:         received,
			ReceiveIntoInventory: payload.ReceiveIntoInventory,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

type updateShipmentRequest struct {
	CommercialName    *string `json:"commercialName,omitempty"`
	GenericName       *string `json:"genericName,omitempty"`
	LotNumber         *string `json:"lotNumber,omitempty"`
	ExpirationDate    *string `json:"expirationDate,omitempty"`
	QuantitySent      *int    `json:"quantitySent,omitempty" validate:"omitempty,min=0"`
	QuantityReceived  *int    `json:"quantityReceived,omitempty" validate:"omitempty,min=0"`
	PassedInspection  *int    `json:"passedInspection,omitempty" validate:"omitempty,min=0"`
	FailedInspection  *int    `json:"failedInspection,omitempty" validate:"omitempty,min=0"`
	DiscrepancyReason *string `json:"discrepancyReason,omitempty"`
	ReceivedDate      *string `json:"receivedDate,omitempty"`
}

func UpdateShipment(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateShipmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := shipments.UpdateShipmentInput{
			CommercialName:    payload.CommercialName,
			GenericName:       payload.GenericName,
			LotNumber:         payload.LotNumber,
			QuantitySent:      payload.QuantitySent,
			QuantityReceived:  payload.QuantityReceived,
			PassedInspection:  payload.PassedInspection,
			FailedInspection:  payload.FailedInspection,
			DiscrepancyReason: payload.DiscrepancyReason,
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

		dto, err := svc.UpdateShipment(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func DeleteShipment(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteShipment(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
