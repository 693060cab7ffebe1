package inventory

import (
	"strings"
	"time"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// Metrics is the aggregate view of an inventory snapshot. Unknown-status
// lots appear in the totals but in none of the three expiration buckets, so
// ExpiredCount+ExpiringCount+SafeCount+UnknownCount == TotalVaccines always
// holds.
type Metrics struct {
	TotalVaccines int   `json:"totalVaccines"`
	TotalQuantity int64 `json:"totalQuantity"`

	ExpiredCount  int `json:"expiredCount"`
	ExpiringCount int `json:"expiringSoonCount"`
	SafeCount     int `json:"safeCount"`
	UnknownCount  int `json:"unknownCount"`
	LowStockCount int `json:"lowStockCount"`

	ExpiredVaccines  []models.VaccineLot `json:"expiredVaccines"`
	ExpiringVaccines []models.VaccineLot `json:"expiringSoonVaccines"`
	LowStockVaccines []models.VaccineLot `json:"lowStockVaccines"`
}

// AlertSummary is the badge-count view derived from Metrics.
type AlertSummary struct {
	Expired  int `json:"expired"`
	Expiring int `json:"expiringSoon"`
	LowStock int `json:"lowStock"`
	Total    int `json:"total"`
}

// Aggregate computes dashboard metrics over a snapshot in a single pass.
// The input is not modified; the returned slices hold the flagged lots in
// their input order.
func Aggregate(lots []models.VaccineLot, today time.Time, opts Options) Metrics {
	m := Metrics{
		TotalVaccines:    len(lots),
		ExpiredVaccines:  []models.VaccineLot{},
		ExpiringVaccines: []models.VaccineLot{},
		LowStockVaccines: []models.VaccineLot{},
	}
	for _, lot := range lots {
		m.TotalQuantity += int64(lot.QuantityOnHand)

		switch ClassifyExpiration(lot.ExpirationDate, today, opts) {
		case enums.ExpirationStatusExpired:
			m.ExpiredCount++
			m.ExpiredVaccines = append(m.ExpiredVaccines, lot)
		case enums.ExpirationStatusExpiring:
			m.ExpiringCount++
			m.ExpiringVaccines = append(m.ExpiringVaccines, lot)
		case enums.ExpirationStatusSafe:
			m.SafeCount++
		default:
			m.UnknownCount++
		}

		if ClassifyStock(lot.QuantityOnHand, opts) == enums.StockLevelLow {
			m.LowStockCount++
			m.LowStockVaccines = append(m.LowStockVaccines, lot)
		}
	}
	return m
}

// Alerts reduces metrics to badge counts. A lot that is both expired and low
// stock contributes to both counts and twice to the total.
func (m Metrics) Alerts() AlertSummary {
	return AlertSummary{
		Expired:  m.ExpiredCount,
		Expiring: m.ExpiringCount,
		LowStock: m.LowStockCount,
		Total:    m.ExpiredCount + m.ExpiringCount + m.LowStockCount,
	}
}

// FamilyGroup is one generic-name bucket of the inventory.
type FamilyGroup struct {
	GenericName string              `json:"genericName"`
	FamilyName  string              `json:"familyName"`
	LotCount    int                 `json:"lotCount"`
	TotalDoses  int64               `json:"totalDoses"`
	Lots        []models.VaccineLot `json:"lots"`
}

// GroupByFamily buckets lots by generic name. Group order follows the first
// occurrence of each family in the input, and lots keep their input order
// within each group, so a caller that pre-sorts the lots controls both.
func GroupByFamily(lots []models.VaccineLot) []FamilyGroup {
	index := make(map[string]int)
	groups := make([]FamilyGroup, 0)
	for _, lot := range lots {
		i, ok := index[lot.GenericName]
		if !ok {
			i = len(groups)
			index[lot.GenericName] = i
			groups = append(groups, FamilyGroup{
				GenericName: lot.GenericName,
				FamilyName:  enums.VaccineFamilyName(lot.GenericName),
			})
		}
		groups[i].LotCount++
		groups[i].TotalDoses += int64(lot.QuantityOnHand)
		groups[i].Lots = append(groups[i].Lots, lot)
	}
	return groups
}

// FilterByStatus keeps the lots matching a status filter. StatusFilterAll,
// or any unrecognized value, returns a copy of the full input.
func FilterByStatus(lots []models.VaccineLot, filter enums.StatusFilter, today time.Time, opts Options) []models.VaccineLot {
	out := make([]models.VaccineLot, 0, len(lots))
	for _, lot := range lots {
		if matchesStatus(lot, filter, today, opts) {
			out = append(out, lot)
		}
	}
	return out
}

func matchesStatus(lot models.VaccineLot, filter enums.StatusFilter, today time.Time, opts Options) bool {
	switch filter {
	case enums.StatusFilterExpired:
		return ClassifyExpiration(lot.ExpirationDate, today, opts) == enums.ExpirationStatusExpired
	case enums.StatusFilterExpiring:
		return ClassifyExpiration(lot.ExpirationDate, today, opts) == enums.ExpirationStatusExpiring
	case enums.StatusFilterSafe:
		return ClassifyExpiration(lot.ExpirationDate, today, opts) == enums.ExpirationStatusSafe
	case enums.StatusFilterLowStock:
		return ClassifyStock(lot.QuantityOnHand, opts) == enums.StockLevelLow
	default:
		return true
	}
}

// Search keeps the lots whose commercial name, generic name, or lot number
// contains the term, case-insensitively. An empty term matches everything.
func Search(lots []models.VaccineLot, term string) []models.VaccineLot {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]models.VaccineLot, 0, len(lots))
	for _, lot := range lots {
		if needle == "" ||
			strings.Contains(strings.ToLower(lot.CommercialName), needle) ||
			strings.Contains(strings.ToLower(lot.GenericName), needle) ||
			strings.Contains(strings.ToLower(lot.LotNumber), needle) {
			out = append(out, lot)
		}
	}
	return out
}
