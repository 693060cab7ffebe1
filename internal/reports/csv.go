package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
)

// csvHeader is the fixed column order of the inventory export.
var csvHeader = []string{
	"Vaccine Name",
	"Generic Name",
	"Lot Number",
	"Expiration Date",
	"Quantity On Hand",
	"Status",
}

// WriteCSV streams the report as RFC 4180 CSV: the header row first, then
// one row per lot in the report's order. Fields containing commas, quotes,
// or newlines are quoted by the encoder, so names like `Vial, 10-pack`
// survive the round trip.
func WriteCSV(w io.Writer, rows []ReportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.CommercialName,
			row.GenericName,
			row.LotNumber,
			row.ExpirationDate,
			fmt.Sprintf("%d", row.QuantityOnHand),
			string(row.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Filename names the download after the day it was generated.
func Filename(now time.Time) string {
	return fmt.Sprintf("vaccine-inventory-%s.csv", inventory.FormatDate(now))
}
