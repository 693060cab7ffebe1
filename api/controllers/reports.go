package controllers

import (
	"fmt"
	"net/http"

	"github.com/vaxtrackhq/vaxtrack-backend/api/responses"
	"github.com/vaxtrackhq/vaxtrack-backend/api/validators"
	"github.com/vaxtrackhq/vaxtrack-backend/internal/reports"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

func reportInputFromQuery(r *http.Request) (reports.ReportInput, error) {
	start, err := validators.ParseQueryDate(r, "startDate")
	if err != nil {
		return reports.ReportInput{}, err
	}
	end, err := validators.ParseQueryDate(r, "endDate")
	if err != nil {
		return reports.ReportInput{}, err
	}
	return reports.ReportInput{
		Family:    r.URL.Query().Get("family"),
		Status:    enums.StatusFilter(r.URL.Query().Get("status")),
		StartDate: start,
		EndDate:   end,
	}, nil
}

func VaccineReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := reportInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.BuildReport(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

// ExportVaccineReport streams the filtered report as a CSV download instead
// of the JSON envelope every other endpoint uses.
func ExportVaccineReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := reportInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		export, err := svc.ExportCSV(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(export.Content)
	}
}
