package enum

import "fmt"

// LoanKind distinguishes money lent to customers from money the business borrowed
type LoanKind string

const (
	LoanKindCustomer LoanKind = "customer"
	LoanKindBusiness LoanKind = "business"
)

func (k LoanKind) String() string {
	return string(k)
}

func (k LoanKind) IsValid() bool {
	return k == LoanKindCustomer || k == LoanKindBusiness
}

// ParseLoanKind parses a path or query value.
func ParseLoanKind(s string) (LoanKind, error) {
	k := LoanKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("invalid loan kind %q", s)
	}
	return k, nil
}
