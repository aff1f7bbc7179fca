package enum

import (
	"database/sql/driver"
	"fmt"
)

// OrderType classifies what an order sells
type OrderType string

const (
	OrderTypeMerchandise OrderType = "merchandise"
	OrderTypeLaundry     OrderType = "laundry"
	OrderTypeMixed       OrderType = "mixed"
)

func (t OrderType) String() string {
	return string(t)
}

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeMerchandise, OrderTypeLaundry, OrderTypeMixed:
		return true
	}
	return false
}

// Allows reports whether an order of this type may carry items of the given type.
func (t OrderType) Allows(item ItemType) bool {
	switch t {
	case OrderTypeMixed:
		return item.IsValid()
	case OrderTypeMerchandise:
		return item == ItemTypeMerchandise
	case OrderTypeLaundry:
		return item == ItemTypeLaundry
	}
	return false
}

func (t *OrderType) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := OrderType(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid order type %q", str)
	}
	*t = v
	return nil
}

func (t OrderType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *OrderType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*t = OrderType(str)
	return nil
}
