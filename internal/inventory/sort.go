package inventory

import (
	"sort"
	"strings"

	"github.com/vaxtrackhq/vaxtrack-backend/pkg/db/models"
	"github.com/vaxtrackhq/vaxtrack-backend/pkg/enums"
)

// SortLots returns a sorted copy of the input; the original slice is never
// reordered. The sort is stable, so equal-key lots keep their relative
// input order and sorting twice by the same key is a no-op. An unrecognized
// sort key returns a copy in input order.
func SortLots(lots []models.VaccineLot, key enums.SortKey, order enums.SortOrder) []models.VaccineLot {
	out := make([]models.VaccineLot, len(lots))
	copy(out, lots)

	less := lessFunc(key)
	if less == nil {
		return out
	}
	if order == enums.SortOrderDesc {
		asc := less
		less = func(a, b models.VaccineLot) bool { return asc(b, a) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func lessFunc(key enums.SortKey) func(a, b models.VaccineLot) bool {
	switch key {
	case enums.SortKeyName:
		return func(a, b models.VaccineLot) bool {
			return strings.ToLower(a.CommercialName) < strings.ToLower(b.CommercialName)
		}
	case enums.SortKeyExpiration:
		return func(a, b models.VaccineLot) bool {
			return a.ExpirationDate.Before(b.ExpirationDate)
		}
	case enums.SortKeyQuantity:
		return func(a, b models.VaccineLot) bool {
			return a.QuantityOnHand < b.QuantityOnHand
		}
	case enums.SortKeyFamily:
		return func(a, b models.VaccineLot) bool {
			return strings.ToLower(a.GenericName) < strings.ToLower(b.GenericName)
		}
	default:
		return nil
	}
}
