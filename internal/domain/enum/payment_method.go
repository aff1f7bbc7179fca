package enum

import (
	"database/sql/driver"
	"fmt"
)

// PaymentMethod records how a receipt was settled
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := PaymentMethod(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid payment method %q", str)
	}
	*m = v
	return nil
}

func (m PaymentMethod) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMethod) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*m = PaymentMethodCash
		return nil
	}
	*m = PaymentMethod(str)
	return nil
}
