package enums

import "fmt"

// LoadStatus is the outcome of a single table load.
type LoadStatus string

const (
	LoadStatusSuccess LoadStatus = "success"
	LoadStatusFailed  LoadStatus = "failed"
)

var validLoadStatuses = []LoadStatus{
	LoadStatusSuccess,
	LoadStatusFailed,
}

// IsValid reports whether the value is a known LoadStatus.
func (l LoadStatus) IsValid() bool {
	for _, candidate := range validLoadStatuses {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLoadStatus converts raw input into a LoadStatus.
func ParseLoadStatus(value string) (LoadStatus, error) {
	for _, candidate := range validLoadStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid load status %q", value)
}
