package enums

import "fmt"

// PaymentMethod describes how a customer settled a transaction.
type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "Credit Card"
	PaymentMethodDebitCard      PaymentMethod = "Debit Card"
	PaymentMethodUPI            PaymentMethod = "UPI"
	PaymentMethodCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentMethodNetBanking     PaymentMethod = "Net Banking"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCreditCard,
	PaymentMethodDebitCard,
	PaymentMethodUPI,
	PaymentMethodCashOnDelivery,
	PaymentMethodNetBanking,
}

// PaymentMethods returns the canonical method list in generation order.
func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(validPaymentMethods))
	copy(out, validPaymentMethods)
	return out
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// Type classifies the method for the warehouse payment dimension.
// Cash on Delivery is the only offline method.
func (p PaymentMethod) Type() PaymentType {
	if p == PaymentMethodCashOnDelivery {
		return PaymentTypeOffline
	}
	return PaymentTypeOnline
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
