package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/internal/inventory"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/logger"
)

type fakeLotLister struct {
	lots   []models.VaccineLot
	err    error
	called int
}

func (f *fakeLotLister) List(context.Context) ([]models.VaccineLot, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	return f.lots, nil
}

func TestInventoryAlertJobScansInventory(t *testing.T) {
	now := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
	lister := &fakeLotLister{lots: []models.VaccineLot{
		{ID: 1, CommercialName: "Daptacel", LotNumber: "DAP-31045", ExpirationDate: now.AddDate(0, 0, -5), QuantityOnHand: 14},
		{ID: 2, CommercialName: "Havrix", LotNumber: "HAV-220", ExpirationDate: now.AddDate(0, 0, 90), QuantityOnHand: 2},
	}}

	job := newInventoryAlertJob(t, lister)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if lister.called != 1 {
		t.Fatalf("expected one scan, got %d", lister.called)
	}
}

func TestInventoryAlertJobPropagatesErrors(t *testing.T) {
	job := newInventoryAlertJob(t, &fakeLotLister{err: errors.New("boom")})
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newInventoryAlertJob(t *testing.T, lister *fakeLotLister) *inventoryAlertJob {
	t.Helper()
	jobIface, err := NewInventoryAlertJob(InventoryAlertJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Lots:    lister,
		Options: inventory.Options{},
	})
	if err != nil {
		t.Fatalf("NewInventoryAlertJob: %v", err)
	}
	job, ok := jobIface.(*inventoryAlertJob)
	if !ok {
		t.Fatalf("expected inventoryAlertJob, got %T", jobIface)
	}
	return job
}

func TestActivitySummaryJobUsesWindowCutoff(t *testing.T) {
	now := time.Date(2026, time.March, 15, 6, 0, 0, 0, time.UTC)
	counter := &fakeAdjustmentCounter{count: 7}

	jobIface, err := NewActivitySummaryJob(ActivitySummaryJobParams{
		Logger: logger.New(logger.Options{ServiceName: "test"}),
		Ledger: counter,
	})
	if err != nil {
		t.Fatalf("NewActivitySummaryJob: %v", err)
	}
	job := jobIface.(*activitySummaryJob)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := now.UTC().Add(-defaultActivityWindow)
	if !counter.lastCutoff.Equal(want) {
		t.Fatalf("cutoff = %s, want %s", counter.lastCutoff, want)
	}
}

type fakeAdjustmentCounter struct {
	count      int64
	lastCutoff time.Time
	err        error
}

func (f *fakeAdjustmentCounter) CountSince(_ context.Context, cutoff time.Time) (int64, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}
