package ledger

import (
	"errors"

	"github.com/sangkips/laundromart-api/internal/domain/enum"
)

var (
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	ErrLoanNotActive     = errors.New("loan is already paid")
)

// LoanStatusFor derives the status implied by a balance.
func LoanStatusFor(balance int64) enum.LoanStatus {
	if balance <= 0 {
		return enum.LoanStatusPaid
	}
	return enum.LoanStatusActive
}

// PaymentOutcome is the loan state after a payment is applied.
type PaymentOutcome struct {
	Balance  int64
	Status   enum.LoanStatus
	Overpaid int64
}

// ApplyPayment subtracts a payment from the current balance. Overpayment is
// allowed and leaves a negative balance; the excess is reported.
func ApplyPayment(balance, amount int64) (PaymentOutcome, error) {
	if amount <= 0 {
		return PaymentOutcome{}, ErrNonPositiveAmount
	}
	next := balance - amount
	out := PaymentOutcome{Balance: next, Status: LoanStatusFor(next)}
	if next < 0 {
		out.Overpaid = -next
	}
	return out, nil
}
