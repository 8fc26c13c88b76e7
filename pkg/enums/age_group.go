package enums

import "fmt"

// AgeGroup is the coarse age bracket assigned to generated customers.
type AgeGroup string

const (
	AgeGroup18To25 AgeGroup = "18-25"
	AgeGroup25To35 AgeGroup = "25-35"
	AgeGroup35To50 AgeGroup = "35-50"
	AgeGroup50Plus AgeGroup = "50+"
)

var validAgeGroups = []AgeGroup{
	AgeGroup18To25,
	AgeGroup25To35,
	AgeGroup35To50,
	AgeGroup50Plus,
}

// AgeGroups returns the bracket list in generation order.
func AgeGroups() []AgeGroup {
	out := make([]AgeGroup, len(validAgeGroups))
	copy(out, validAgeGroups)
	return out
}

// IsValid reports whether the value is a known AgeGroup.
func (a AgeGroup) IsValid() bool {
	for _, candidate := range validAgeGroups {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAgeGroup converts raw input into an AgeGroup.
func ParseAgeGroup(value string) (AgeGroup, error) {
	for _, candidate := range validAgeGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid age group %q", value)
}
