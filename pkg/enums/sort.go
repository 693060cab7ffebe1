package enums

// SortKey names the columns the inventory view can be ordered by. An
// unrecognized key leaves the input order untouched; that no-op is part of
// the sorting contract, not an accident.
type SortKey string

const (
	SortKeyName       SortKey = "name"
	SortKeyExpiration SortKey = "expiration"
	SortKeyQuantity   SortKey = "quantity"
	SortKeyFamily     SortKey = "family"
)

func (k SortKey) String() string { return string(k) }

// SortOrder is the direction of an inventory sort.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

func (o SortOrder) String() string { return string(o) }

// StatusFilter selects the slice of inventory a listing or report covers.
type StatusFilter string

const (
	StatusFilterExpired  StatusFilter = "expired"
	StatusFilterExpiring StatusFilter = "expiring"
	StatusFilterSafe     StatusFilter = "safe"
	StatusFilterLowStock StatusFilter = "lowStock"
	StatusFilterAll      StatusFilter = "all"
)

func (f StatusFilter) String() string { return string(f) }
