package enum

import (
	"database/sql/driver"
	"fmt"
)

// ItemType tells whether an order line sells merchandise or a laundry service
type ItemType string

const (
	ItemTypeMerchandise ItemType = "merchandise"
	ItemTypeLaundry     ItemType = "laundry"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) IsValid() bool {
	return t == ItemTypeMerchandise || t == ItemTypeLaundry
}

func (t *ItemType) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := ItemType(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid item type %q", str)
	}
	*t = v
	return nil
}

func (t ItemType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *ItemType) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*t = ItemType(str)
	return nil
}
