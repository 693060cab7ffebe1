package enums

import "fmt"

// ExpirationStatus is the classification a lot receives from its expiration
// date relative to a reference day.
type ExpirationStatus string

const (
	ExpirationStatusExpired  ExpirationStatus = "expired"
	ExpirationStatusExpiring ExpirationStatus = "expiring"
	ExpirationStatusSafe     ExpirationStatus = "safe"
	// ExpirationStatusUnknown is assigned when the expiration date is absent
	// or unparsable; lots in this state are excluded from status counts but
	// still appear in totals.
	ExpirationStatusUnknown ExpirationStatus = "unknown"
)

var validExpirationStatuses = []ExpirationStatus{
	ExpirationStatusExpired,
	ExpirationStatusExpiring,
	ExpirationStatusSafe,
	ExpirationStatusUnknown,
}

func (s ExpirationStatus) String() string { return string(s) }

// IsValid reports whether the value matches a canonical status.
func (s ExpirationStatus) IsValid() bool {
	for _, candidate := range validExpirationStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseExpirationStatus converts raw input into an ExpirationStatus.
func ParseExpirationStatus(value string) (ExpirationStatus, error) {
	for _, candidate := range validExpirationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expiration status %q", value)
}
