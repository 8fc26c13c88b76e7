package enums

import "fmt"

// PaymentType groups payment methods for the warehouse payment dimension.
type PaymentType string

const (
	PaymentTypeOnline  PaymentType = "Online"
	PaymentTypeOffline PaymentType = "Offline"
)

var validPaymentTypes = []PaymentType{
	PaymentTypeOnline,
	PaymentTypeOffline,
}

// IsValid reports whether the value is a known PaymentType.
func (p PaymentType) IsValid() bool {
	for _, candidate := range validPaymentTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentType converts raw input into a PaymentType.
func ParsePaymentType(value string) (PaymentType, error) {
	for _, candidate := range validPaymentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment type %q", value)
}
