package inventory

import (
	"testing"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

func sampleLots() []models.VaccineLot {
	return []models.VaccineLot{
		{
			ID:             1,
			CommercialName: "Fluzone",
			GenericName:    "influenza",
			LotNumber:      "FLU-001",
			ExpirationDate: day(-10),
			QuantityOnHand: 20,
		},
		{
			ID:             2,
			CommercialName: "Shingrix",
			GenericName:    "zoster",
			LotNumber:      "SHI-014",
			ExpirationDate: day(5),
			QuantityOnHand: 3,
		},
		{
			ID:             3,
			CommercialName: "Havrix",
			GenericName:    "hepA",
			LotNumber:      "HAV-220",
			ExpirationDate: day(120),
			QuantityOnHand: 5,
		},
	}
}

func TestAggregateScenario(t *testing.T) {
	m := Aggregate(sampleLots(), today, Options{})

	if m.TotalVaccines != 3 {
		t.Fatalf("TotalVaccines = %d, want 3", m.TotalVaccines)
	}
	if m.TotalQuantity != 28 {
		t.Fatalf("TotalQuantity = %d, want 28", m.TotalQuantity)
	}
	if m.ExpiredCount != 1 || m.ExpiringCount != 1 || m.SafeCount != 1 {
		t.Fatalf("counts = expired %d expiring %d safe %d, want 1/1/1",
			m.ExpiredCount, m.ExpiringCount, m.SafeCount)
	}
	// Lot 2 (qty 3) and lot 3 (qty 5) are both at or under the threshold.
	if m.LowStockCount != 2 {
		t.Fatalf("LowStockCount = %d, want 2", m.LowStockCount)
	}
	if len(m.ExpiredVaccines) != 1 || m.ExpiredVaccines[0].ID != 1 {
		t.Fatalf("unexpected expired lots %+v", m.ExpiredVaccines)
	}
	if len(m.ExpiringVaccines) != 1 || m.ExpiringVaccines[0].ID != 2 {
		t.Fatalf("unexpected expiring lots %+v", m.ExpiringVaccines)
	}
}

func TestAggregateBucketsPartitionTotal(t *testing.T) {
	lots := sampleLots()
	lots = append(lots, models.VaccineLot{ID: 4, CommercialName: "Mystery", QuantityOnHand: 7})

	m := Aggregate(lots, today, Options{})
	if sum := m.ExpiredCount + m.ExpiringCount + m.SafeCount + m.UnknownCount; sum != m.TotalVaccines {
		t.Fatalf("buckets sum to %d, total is %d", sum, m.TotalVaccines)
	}
	if m.UnknownCount != 1 {
		t.Fatalf("UnknownCount = %d, want 1", m.UnknownCount)
	}
	if m.TotalQuantity != 35 {
		t.Fatalf("TotalQuantity = %d, want 35", m.TotalQuantity)
	}
}

func TestAggregateEmpty(t *testing.T) {
	m := Aggregate(nil, today, Options{})
	if m.TotalVaccines != 0 || m.TotalQuantity != 0 || m.LowStockCount != 0 {
		t.Fatalf("unexpected metrics for empty inventory: %+v", m)
	}
	if m.ExpiredVaccines == nil || m.ExpiringVaccines == nil || m.LowStockVaccines == nil {
		t.Fatal("lot slices must be empty, not nil")
	}
}

func TestAlerts(t *testing.T) {
	a := Aggregate(sampleLots(), today, Options{}).Alerts()
	if a.Expired != 1 || a.Expiring != 1 || a.LowStock != 2 {
		t.Fatalf("unexpected alerts %+v", a)
	}
	if a.Total != 4 {
		t.Fatalf("Total = %d, want 4", a.Total)
	}
}

func TestGroupByFamily(t *testing.T) {
	lots := sampleLots()
	lots = append(lots, models.VaccineLot{
		ID: 4, CommercialName: "FluMist", GenericName: "influenza", QuantityOnHand: 10, ExpirationDate: day(60),
	})

	groups := GroupByFamily(lots)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	byName := map[string]FamilyGroup{}
	for _, g := range groups {
		byName[g.GenericName] = g
	}
	flu := byName["influenza"]
	if flu.LotCount != 2 || flu.TotalDoses != 30 {
		t.Fatalf("influenza group = %+v", flu)
	}
	if flu.Lots[0].ID != 1 || flu.Lots[1].ID != 4 {
		t.Fatalf("lots lost input order: %+v", flu.Lots)
	}
}

func TestGroupByFamilyNames(t *testing.T) {
	groups := GroupByFamily([]models.VaccineLot{
		{ID: 8, GenericName: "Hep A", QuantityOnHand: 2},
		{ID: 9, GenericName: "experimental-x", QuantityOnHand: 1},
	})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// First occurrence in the input determines group order.
	if groups[0].FamilyName != "Hepatitis A" {
		t.Fatalf("known code not resolved: %+v", groups[0])
	}
	if groups[1].FamilyName != "experimental-x" {
		t.Fatalf("unknown family code must fall back to itself: %+v", groups[1])
	}
}

func TestFilterByStatus(t *testing.T) {
	lots := sampleLots()

	expired := FilterByStatus(lots, enums.StatusFilterExpired, today, Options{})
	if len(expired) != 1 || expired[0].ID != 1 {
		t.Fatalf("expired filter = %+v", expired)
	}
	low := FilterByStatus(lots, enums.StatusFilterLowStock, today, Options{})
	if len(low) != 2 {
		t.Fatalf("low stock filter kept %d lots, want 2", len(low))
	}
	all := FilterByStatus(lots, enums.StatusFilterAll, today, Options{})
	if len(all) != len(lots) {
		t.Fatalf("all filter kept %d lots, want %d", len(all), len(lots))
	}
	unrecognized := FilterByStatus(lots, enums.StatusFilter("bogus"), today, Options{})
	if len(unrecognized) != len(lots) {
		t.Fatal("unrecognized filter must keep everything")
	}
}

func TestSearch(t *testing.T) {
	lots := sampleLots()

	if got := Search(lots, "flu"); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("search by name = %+v", got)
	}
	if got := Search(lots, "HAV-220"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("search by lot number = %+v", got)
	}
	if got := Search(lots, "ZOSTER"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("search is case-insensitive, got %+v", got)
	}
	if got := Search(lots, "  "); len(got) != len(lots) {
		t.Fatal("blank term must match everything")
	}
	if got := Search(lots, "nothing-here"); len(got) != 0 {
		t.Fatalf("miss returned %+v", got)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	lots := sampleLots()
	snapshot := make([]models.VaccineLot, len(lots))
	copy(snapshot, lots)

	FilterByStatus(lots, enums.StatusFilterExpired, today, Options{})
	Search(lots, "flu")
	Aggregate(lots, today, Options{})

	for i := range lots {
		if lots[i] != snapshot[i] {
			t.Fatalf("input mutated at %d: %+v", i, lots[i])
		}
	}
}
