package enum

import (
	"database/sql/driver"
	"fmt"
)

// TaxPolicy decides how an order total is derived from its subtotal
type TaxPolicy string

const (
	// TaxPolicyNone charges the subtotal as the total.
	TaxPolicyNone TaxPolicy = "none"
	// TaxPolicyFlat adds a flat percentage of the subtotal.
	TaxPolicyFlat TaxPolicy = "flat10"
)

func (p TaxPolicy) String() string {
	return string(p)
}

func (p TaxPolicy) IsValid() bool {
	return p == TaxPolicyNone || p == TaxPolicyFlat
}

// ParseTaxPolicy parses a configured policy name; empty means none.
func ParseTaxPolicy(s string) (TaxPolicy, error) {
	if s == "" {
		return TaxPolicyNone, nil
	}
	p := TaxPolicy(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown tax policy %q", s)
	}
	return p, nil
}

func (p TaxPolicy) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *TaxPolicy) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*p = TaxPolicyNone
		return nil
	}
	*p = TaxPolicy(str)
	return nil
}
