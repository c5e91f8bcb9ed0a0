package enums

import "fmt"

// PaymentMethod identifies how a customer pays for an order. Cash on delivery
// is the only supported method today.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCashOnDelivery
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	if value == string(PaymentMethodCashOnDelivery) {
		return PaymentMethodCashOnDelivery, nil
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
