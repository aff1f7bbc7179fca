package enum

import (
	"database/sql/driver"
	"fmt"
)

// LoanStatus is active until the balance reaches zero
type LoanStatus string

const (
	LoanStatusActive LoanStatus = "active"
	LoanStatusPaid   LoanStatus = "paid"
)

func (s LoanStatus) String() string {
	return string(s)
}

func (s LoanStatus) IsValid() bool {
	return s == LoanStatusActive || s == LoanStatusPaid
}

func (s *LoanStatus) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := LoanStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid loan status %q", str)
	}
	*s = v
	return nil
}

func (s LoanStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *LoanStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = LoanStatusActive
		return nil
	}
	*s = LoanStatus(str)
	return nil
}
