// Package inventory holds the pure classification and aggregation engine
// behind the dashboard. Every time-dependent function takes the reference
// day as an explicit argument; nothing in this package reads the clock or
// touches storage.
package inventory

import (
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

const (
	// DefaultExpiringWindowDays is the inclusive number of days before
	// expiration during which a lot counts as expiring soon.
	DefaultExpiringWindowDays = 30
	// DefaultLowStockThreshold is the on-hand quantity at or below which a
	// lot is flagged low stock.
	DefaultLowStockThreshold = 5
)

// Options carries the classification thresholds. The zero value selects the
// defaults, so callers without configuration can pass Options{}.
type Options struct {
	ExpiringWindowDays int
	LowStockThreshold  int
}

func (o Options) expiringWindow() int {
	if o.ExpiringWindowDays > 0 {
		return o.ExpiringWindowDays
	}
	return DefaultExpiringWindowDays
}

func (o Options) lowStockThreshold() int {
	if o.LowStockThreshold > 0 {
		return o.LowStockThreshold
	}
	return DefaultLowStockThreshold
}

// civilDate truncates a timestamp to its calendar day in UTC. Expiration
// handling has day granularity; time-of-day never participates.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiration returns the whole-day distance from today to the
// expiration date: negative once the date has passed, zero on the
// expiration day itself.
func DaysUntilExpiration(expiration, today time.Time) int {
	diff := civilDate(expiration).Sub(civilDate(today))
	return int(diff.Hours() / 24)
}

// ClassifyExpiration buckets a lot by its expiration date. A lot expiring
// exactly today is expiring-soon, not expired: the boundary is inclusive on
// the expiring side. A zero expiration date yields StatusUnknown so one bad
// record degrades instead of failing a whole aggregation.
func ClassifyExpiration(expiration, today time.Time, opts Options) enums.ExpirationStatus {
	if expiration.IsZero() {
		return enums.ExpirationStatusUnknown
	}
	days := DaysUntilExpiration(expiration, today)
	switch {
	case days < 0:
		return enums.ExpirationStatusExpired
	case days <= opts.expiringWindow():
		return enums.ExpirationStatusExpiring
	default:
		return enums.ExpirationStatusSafe
	}
}

// ClassifyStock flags quantities at or below the threshold as low.
func ClassifyStock(quantityOnHand int, opts Options) enums.StockLevel {
	if quantityOnHand <= opts.lowStockThreshold() {
		return enums.StockLevelLow
	}
	return enums.StockLevelNormal
}

// ParseExpirationDate parses the wire form of an expiration date
// (yyyy-MM-dd). Callers treat a failure as "unknown status", never as a
// fatal condition.
func ParseExpirationDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// FormatDate renders a date in the wire form used by reports and exports.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
