package enum

import (
	"database/sql/driver"
	"fmt"
)

// CreditStatus tracks whether money owed to a customer has been handed back
type CreditStatus string

const (
	CreditStatusPending  CreditStatus = "pending"
	CreditStatusRedeemed CreditStatus = "redeemed"
)

func (s CreditStatus) String() string {
	return string(s)
}

func (s CreditStatus) IsValid() bool {
	return s == CreditStatusPending || s == CreditStatusRedeemed
}

func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	str, err := unmarshalString(data)
	if err != nil {
		return err
	}
	v := CreditStatus(str)
	if !v.IsValid() {
		return fmt.Errorf("invalid credit status %q", str)
	}
	*s = v
	return nil
}

func (s CreditStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *CreditStatus) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = CreditStatusPending
		return nil
	}
	*s = CreditStatus(str)
	return nil
}
