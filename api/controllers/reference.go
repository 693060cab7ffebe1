package controllers

import (
	"net/http"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

type adjustmentReasonEntry struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ListVaccineFamilies serves the static generic-name reference table.
func ListVaccineFamilies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, enums.VaccineFamilies())
	}
}

// ListAdjustmentReasons serves the accepted reason codes with display labels.
func ListAdjustmentReasons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reasons := enums.AdjustmentReasons()
		entries := make([]adjustmentReasonEntry, 0, len(reasons))
		for _, reason := range reasons {
			entries = append(entries, adjustmentReasonEntry{Code: reason.String(), Label: reason.Label()})
		}
		responses.WriteSuccess(w, entries)
	}
}
