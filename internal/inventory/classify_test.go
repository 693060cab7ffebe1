package inventory

import (
	"testing"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

var today = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func TestDaysUntilExpiration(t *testing.T) {
	cases := []struct {
		name       string
		expiration time.Time
		want       int
	}{
		{"same day", day(0), 0},
		{"yesterday", day(-1), -1},
		{"tomorrow", day(1), 1},
		{"thirty days out", day(30), 30},
		{"ignores time of day", time.Date(2026, time.March, 16, 23, 59, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DaysUntilExpiration(tc.expiration, today)
			if got != tc.want {
				t.Fatalf("DaysUntilExpiration = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestClassifyExpirationBoundaries(t *testing.T) {
	cases := []struct {
		name       string
		expiration time.Time
		want       enums.ExpirationStatus
	}{
		{"yesterday is expired", day(-1), enums.ExpirationStatusExpired},
		{"today is expiring, not expired", day(0), enums.ExpirationStatusExpiring},
		{"window edge is expiring", day(30), enums.ExpirationStatusExpiring},
		{"past window edge is safe", day(31), enums.ExpirationStatusSafe},
		{"far future is safe", day(365), enums.ExpirationStatusSafe},
		{"zero date is unknown", time.Time{}, enums.ExpirationStatusUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyExpiration(tc.expiration, today, Options{})
			if got != tc.want {
				t.Fatalf("ClassifyExpiration = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyExpirationCustomWindow(t *testing.T) {
	opts := Options{ExpiringWindowDays: 7}
	if got := ClassifyExpiration(day(7), today, opts); got != enums.ExpirationStatusExpiring {
		t.Fatalf("day 7 with 7-day window = %s, want expiring", got)
	}
	if got := ClassifyExpiration(day(8), today, opts); got != enums.ExpirationStatusSafe {
		t.Fatalf("day 8 with 7-day window = %s, want safe", got)
	}
}

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		quantity int
		want     enums.StockLevel
	}{
		{0, enums.StockLevelLow},
		{5, enums.StockLevelLow},
		{6, enums.StockLevelNormal},
		{100, enums.StockLevelNormal},
	}
	for _, tc := range cases {
		if got := ClassifyStock(tc.quantity, Options{}); got != tc.want {
			t.Fatalf("ClassifyStock(%d) = %s, want %s", tc.quantity, got, tc.want)
		}
	}
}

func TestParseExpirationDate(t *testing.T) {
	got, err := ParseExpirationDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseExpirationDate failed: %v", err)
	}
	if !got.Equal(time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}
	if _, err := ParseExpirationDate("not-a-date"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
