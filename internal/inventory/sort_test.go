package inventory

import (
	"testing"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

func TestSortLotsByName(t *testing.T) {
	lots := sampleLots()
	got := SortLots(lots, enums.SortKeyName, enums.SortOrderAsc)
	wantOrder := []uint{1, 3, 2} // Fluzone, Havrix, Shingrix
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d = lot %d, want %d", i, got[i].ID, id)
		}
	}

	desc := SortLots(lots, enums.SortKeyName, enums.SortOrderDesc)
	if desc[0].ID != 2 || desc[2].ID != 1 {
		t.Fatalf("descending order wrong: %+v", ids(desc))
	}
}

func TestSortLotsByExpirationAndQuantity(t *testing.T) {
	lots := sampleLots()

	byExp := SortLots(lots, enums.SortKeyExpiration, enums.SortOrderAsc)
	if byExp[0].ID != 1 || byExp[1].ID != 2 || byExp[2].ID != 3 {
		t.Fatalf("expiration order wrong: %v", ids(byExp))
	}

	byQty := SortLots(lots, enums.SortKeyQuantity, enums.SortOrderDesc)
	if byQty[0].QuantityOnHand != 20 || byQty[2].QuantityOnHand != 3 {
		t.Fatalf("quantity order wrong: %v", ids(byQty))
	}
}

func TestSortLotsDoesNotMutateInput(t *testing.T) {
	lots := sampleLots()
	SortLots(lots, enums.SortKeyName, enums.SortOrderAsc)
	if lots[0].ID != 1 || lots[1].ID != 2 || lots[2].ID != 3 {
		t.Fatalf("input reordered: %v", ids(lots))
	}
}

func TestSortLotsStable(t *testing.T) {
	lots := []models.VaccineLot{
		{ID: 1, CommercialName: "Fluzone", QuantityOnHand: 5},
		{ID: 2, CommercialName: "fluzone", QuantityOnHand: 5},
		{ID: 3, CommercialName: "Adacel", QuantityOnHand: 5},
	}
	once := SortLots(lots, enums.SortKeyName, enums.SortOrderAsc)
	if once[0].ID != 3 || once[1].ID != 1 || once[2].ID != 2 {
		t.Fatalf("equal keys lost input order: %v", ids(once))
	}
	twice := SortLots(once, enums.SortKeyName, enums.SortOrderAsc)
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("resort changed order at %d", i)
		}
	}
}

func TestSortLotsUnknownKey(t *testing.T) {
	lots := sampleLots()
	got := SortLots(lots, enums.SortKey("bogus"), enums.SortOrderAsc)
	for i := range lots {
		if got[i].ID != lots[i].ID {
			t.Fatal("unknown key must preserve input order")
		}
	}
}

func ids(lots []models.VaccineLot) []uint {
	out := make([]uint, len(lots))
	for i, lot := range lots {
		out[i] = lot.ID
	}
	return out
}
