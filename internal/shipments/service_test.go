package shipments

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/config"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	pkgerrors "github.com/vaxtrackhq/vaxtrack-backend/pkg/errors"
)

var testDay = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()
	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")),
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := client.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()
	client := openTestClient(t)
	svc, err := NewService(NewRepository(client.DB()), client)
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	svc.(*service).now = func() time.Time { return testDay }
	return svc, client
}

func shipmentInput(received, passed, failed int) CreateShipmentInput {
	var reason *string
	if failed > 0 {
		r := "broken vials"
		reason = &r
	}
	return CreateShipmentInput{
		CommercialName:    "Fluzone",
		GenericName:       "influenza",
		LotNumber:         "FLU-001",
		ExpirationDate:    testDay.AddDate(0, 6, 0),
		QuantitySent:      received,
		QuantityReceived:  received,
		PassedInspection:  passed,
		FailedInspection:  failed,
		DiscrepancyReason: reason,
	}
}

func TestCreateShipment(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.CreateShipment(context.Background(), shipmentInput(100, 98, 2))
	if err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}
	if got.ID == 0 {
		t.Fatal("id was not assigned")
	}
	if got.ReceivedDate != "2026-03-15" {
		t.Fatalf("received date defaulted to %q", got.ReceivedDate)
	}
	if got.FamilyName != "influenza" {
		t.Fatalf("family name = %q", got.FamilyName)
	}
}

func TestCreateShipmentValidation(t *testing.T) {
	svc, _ := newTestService(t)

	in := shipmentInput(100, 90, 5) // 90+5 != 100
	if _, err := svc.CreateShipment(context.Background(), in); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("mismatched counts accepted: %v", err)
	}

	in = shipmentInput(10, 8, 2)
	in.DiscrepancyReason = nil
	if _, err := svc.CreateShipment(context.Background(), in); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("missing discrepancy reason accepted: %v", err)
	}

	in = shipmentInput(10, 10, 0)
	in.QuantitySent = -1
	if _, err := svc.CreateShipment(context.Background(), in); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("negative count accepted: %v", err)
	}
}

func TestCreateShipmentReceivesIntoInventory(t *testing.T) {
	svc, client := newTestService(t)

	in := shipmentInput(50, 48, 2)
	in.ReceiveIntoInventory = true
	if _, err := svc.CreateShipment(context.Background(), in); err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}

	var lot models.VaccineLot
	if err := client.DB().First(&lot, "lot_number = ?", "FLU-001").Error; err != nil {
		t.Fatalf("lot was not created: %v", err)
	}
	if lot.QuantityOnHand != 48 {
		t.Fatalf("lot quantity = %d, want passed-inspection 48", lot.QuantityOnHand)
	}
	if !lot.ReceivedDate.Equal(testDay) {
		t.Fatalf("lot received date = %v", lot.ReceivedDate)
	}
}

func TestCreateShipmentWithoutReceiveLeavesInventory(t *testing.T) {
	svc, client := newTestService(t)

	if _, err := svc.CreateShipment(context.Background(), shipmentInput(50, 50, 0)); err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}

	var n int64
	if err := client.DB().Model(&models.VaccineLot{}).Count(&n).Error; err != nil {
		t.Fatalf("count lots: %v", err)
	}
	if n != 0 {
		t.Fatalf("unexpected %d lots created", n)
	}
}

func TestRecentShipmentsOrderAndLimit(t *testing.T) {
	svc, _ := newTestService(t)

	for _, offset := range []int{-5, -1, -3, -2, -4} {
		in := shipmentInput(10, 10, 0)
		in.ReceivedDate = testDay.AddDate(0, 0, offset)
		in.LotNumber = fmt.Sprintf("FLU-%03d", -offset)
		if _, err := svc.CreateShipment(context.Background(), in); err != nil {
			t.Fatalf("CreateShipment failed: %v", err)
		}
	}

	recent, err := svc.RecentShipments(context.Background(), 3)
	if err != nil {
		t.Fatalf("RecentShipments failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("got %d entries, want 3", len(recent))
	}
	want := []string{"2026-03-14", "2026-03-13", "2026-03-12"}
	for i, date := range want {
		if recent[i].ReceivedDate != date {
			t.Fatalf("position %d received %s, want %s", i, recent[i].ReceivedDate, date)
		}
	}

	all, err := svc.RecentShipments(context.Background(), 0)
	if err != nil {
		t.Fatalf("RecentShipments failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("default limit returned %d entries", len(all))
	}
}

func TestUpdateAndDeleteShipment(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateShipment(context.Background(), shipmentInput(10, 10, 0))
	if err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}

	passed, failed := 9, 1
	reason := "cold chain break"
	got, err := svc.UpdateShipment(context.Background(), created.ID, UpdateShipmentInput{
		PassedInspection:  &passed,
		FailedInspection:  &failed,
		DiscrepancyReason: &reason,
	})
	if err != nil {
		t.Fatalf("UpdateShipment failed: %v", err)
	}
	if got.PassedInspection != 9 || got.FailedInspection != 1 {
		t.Fatalf("unexpected record %+v", got)
	}

	badFailed := 5
	if _, err := svc.UpdateShipment(context.Background(), created.ID, UpdateShipmentInput{FailedInspection: &badFailed}); err == nil {
		t.Fatal("update breaking count invariant accepted")
	}

	if err := svc.DeleteShipment(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteShipment failed: %v", err)
	}
	if _, err := svc.GetShipment(context.Background(), created.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
