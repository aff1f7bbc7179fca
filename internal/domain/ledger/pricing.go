package ledger

import (
	"errors"
	"fmt"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNegativePrice   = errors.New("unit price cannot be negative")
	ErrNegativeTaxRate = errors.New("tax rate cannot be negative")
)

// Line is the priced part of an order item.
type Line struct {
	UnitPrice int64
	Quantity  int
}

// Total is the frozen line total.
func (l Line) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Totals is the snapshot written onto an order.
type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// PricingPolicy derives an order total from its subtotal. One policy is active
// per process so order totals and receipt display always agree.
type PricingPolicy struct {
	policy enum.TaxPolicy
	rate   decimal.Decimal
}

// NewPricingPolicy builds a policy from its configured name and rate. The rate
// only matters for the flat policy.
func NewPricingPolicy(name, rate string) (PricingPolicy, error) {
	policy, err := enum.ParseTaxPolicy(name)
	if err != nil {
		return PricingPolicy{}, err
	}
	if policy == enum.TaxPolicyNone {
		return PricingPolicy{policy: policy, rate: decimal.Zero}, nil
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return PricingPolicy{}, fmt.Errorf("tax rate %q: %w", rate, err)
	}
	if r.IsNegative() {
		return PricingPolicy{}, ErrNegativeTaxRate
	}
	return PricingPolicy{policy: policy, rate: r}, nil
}

// NoTax is the policy that charges the subtotal as the total.
func NoTax() PricingPolicy {
	return PricingPolicy{policy: enum.TaxPolicyNone, rate: decimal.Zero}
}

// Name returns the policy snapshotted onto orders.
func (p PricingPolicy) Name() enum.TaxPolicy {
	if p.policy == "" {
		return enum.TaxPolicyNone
	}
	return p.policy
}

// Rate returns the tax rate as a decimal fraction.
func (p PricingPolicy) Rate() decimal.Decimal {
	return p.rate
}

// Tax returns the tax due on a subtotal, rounded half up to the cent.
func (p PricingPolicy) Tax(subtotal int64) int64 {
	if p.Name() == enum.TaxPolicyNone {
		return 0
	}
	return decimal.NewFromInt(subtotal).Mul(p.rate).Round(0).IntPart()
}

// Price validates the lines and computes the order totals.
func (p PricingPolicy) Price(lines []Line) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, ErrEmptyOrder
	}
	var subtotal int64
	for _, l := range lines {
		if l.Quantity < 1 {
			return Totals{}, ErrInvalidQuantity
		}
		if l.UnitPrice < 0 {
			return Totals{}, ErrNegativePrice
		}
		subtotal += l.Total()
	}
	tax := p.Tax(subtotal)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}, nil
}
