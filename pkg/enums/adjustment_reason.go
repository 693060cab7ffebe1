package enums

import "fmt"

// AdjustmentReason tags a manual inventory adjustment with why the recorded
// count changed.
type AdjustmentReason string

const (
	AdjustmentReasonExpired       AdjustmentReason = "expired"
	AdjustmentReasonDamaged       AdjustmentReason = "damaged"
	AdjustmentReasonSpillage      AdjustmentReason = "spillage"
	AdjustmentReasonTemperature   AdjustmentReason = "temperature"
	AdjustmentReasonCountingError AdjustmentReason = "counting_error"
	AdjustmentReasonOther         AdjustmentReason = "other"
)

var validAdjustmentReasons = []AdjustmentReason{
	AdjustmentReasonExpired,
	AdjustmentReasonDamaged,
	AdjustmentReasonSpillage,
	AdjustmentReasonTemperature,
	AdjustmentReasonCountingError,
	AdjustmentReasonOther,
}

var adjustmentReasonLabels = map[AdjustmentReason]string{
	AdjustmentReasonExpired:       "Expired Vaccines",
	AdjustmentReasonDamaged:       "Damaged During Storage",
	AdjustmentReasonSpillage:      "Spillage/Wastage",
	AdjustmentReasonTemperature:   "Temperature Excursion",
	AdjustmentReasonCountingError: "Counting Error",
	AdjustmentReasonOther:         "Other",
}

func (r AdjustmentReason) String() string { return string(r) }

// IsValid reports whether the value matches the canonical reason set.
func (r AdjustmentReason) IsValid() bool {
	for _, candidate := range validAdjustmentReasons {
		if candidate == r {
			return true
		}
	}
	return false
}

// Label returns the human-readable label for a reason. Unrecognized codes
// round-trip as their raw string so ledger rows written with retired codes
// still display.
func (r AdjustmentReason) Label() string {
	if label, ok := adjustmentReasonLabels[r]; ok {
		return label
	}
	return string(r)
}

// AdjustmentReasons returns the canonical reasons in display order.
func AdjustmentReasons() []AdjustmentReason {
	reasons := make([]AdjustmentReason, len(validAdjustmentReasons))
	copy(reasons, validAdjustmentReasons)
	return reasons
}

// ParseAdjustmentReason converts raw input into an AdjustmentReason.
func ParseAdjustmentReason(value string) (AdjustmentReason, error) {
	for _, candidate := range validAdjustmentReasons {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid adjustment reason %q", value)
}
