package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

var testDay = time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)

type stubLots struct {
	lots []models.VaccineLot
}

func (s *stubLots) List(_ context.Context) ([]models.VaccineLot, error) {
	return s.lots, nil
}

func day(offset int) time.Time {
	return testDay.AddDate(0, 0, offset)
}

func testLots() []models.VaccineLot {
	return []models.VaccineLot{
		{ID: 1, CommercialName: "Fluzone", GenericName: "influenza", LotNumber: "FLU-001", ExpirationDate: day(-2), QuantityOnHand: 20},
		{ID: 2, CommercialName: "Shingrix", GenericName: "zoster", LotNumber: "SHI-014", ExpirationDate: day(10), QuantityOnHand: 3},
		{ID: 3, CommercialName: "Havrix", GenericName: "hepA", LotNumber: "HAV-220", ExpirationDate: day(200), QuantityOnHand: 50},
	}
}

func newTestService(t *testing.T, lots []models.VaccineLot) Service {
	t.Helper()
	svc, err := NewService(&stubLots{lots: lots}, inventory.Options{})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	svc.(*service).now = func() time.Time { return testDay }
	return svc
}

func TestBuildReportFilters(t *testing.T) {
	svc := newTestService(t, testLots())

	all, err := svc.BuildReport(context.Background(), ReportInput{})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d rows, want 3", len(all))
	}
	if all[0].Status != enums.ExpirationStatusExpired {
		t.Fatalf("row 0 status = %s", all[0].Status)
	}

	byFamily, err := svc.BuildReport(context.Background(), ReportInput{Family: "zos"})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(byFamily) != 1 || byFamily[0].ID != 2 {
		t.Fatalf("family filter = %+v", byFamily)
	}

	byStatus, err := svc.BuildReport(context.Background(), ReportInput{Status: enums.StatusFilterExpiring})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != 2 {
		t.Fatalf("status filter = %+v", byStatus)
	}

	byRange, err := svc.BuildReport(context.Background(), ReportInput{
		StartDate: day(0),
		EndDate:   day(30),
	})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}
	if len(byRange) != 1 || byRange[0].ID != 2 {
		t.Fatalf("date range filter = %+v", byRange)
	}
}

func TestWriteCSV(t *testing.T) {
	svc := newTestService(t, testLots())
	rows, err := svc.BuildReport(context.Background(), ReportInput{})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "Vaccine Name,Generic Name,Lot Number,Expiration Date,Quantity On Hand,Status" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "Fluzone,influenza,FLU-001,2026-03-13,20,expired" {
		t.Fatalf("unexpected first row %q", lines[1])
	}
}

func TestWriteCSVQuotesSpecialFields(t *testing.T) {
	lots := []models.VaccineLot{
		{ID: 1, CommercialName: `Vial, 10-pack "cold"`, GenericName: "influenza", LotNumber: "FLU-001", ExpirationDate: day(5), QuantityOnHand: 4},
	}
	svc := newTestService(t, lots)
	rows, err := svc.BuildReport(context.Background(), ReportInput{})
	if err != nil {
		t.Fatalf("BuildReport failed: %v", err)
	}

	var buf strings.Builder
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[1] != `"Vial, 10-pack ""cold""",influenza,FLU-001,2026-03-20,4,expiring` {
		t.Fatalf("field not quoted: %q", lines[1])
	}
}

func TestExportCSVFilename(t *testing.T) {
	svc := newTestService(t, testLots())
	export, err := svc.ExportCSV(context.Background(), ReportInput{})
	if err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}
	if export.Filename != "vaccine-inventory-2026-03-15.csv" {
		t.Fatalf("filename = %q", export.Filename)
	}
	if !strings.HasPrefix(string(export.Content), "Vaccine Name,") {
		t.Fatalf("content missing header: %q", string(export.Content)[:40])
	}
}
